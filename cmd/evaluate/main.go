package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"pdfpilot/internal/config"
	"pdfpilot/internal/db"
	"pdfpilot/internal/eval"
	"pdfpilot/internal/llm"
	"pdfpilot/internal/log"
	"pdfpilot/internal/services"
	"pdfpilot/pkg/client"
)

func main() {
	evalSet := flag.String("eval-set", "eval/eval_set.jsonl", "path to the evaluation set (JSONL)")
	imagePath := flag.String("image", "", "answer questions about a single page image")
	pdfPath := flag.String("pdf", "", "answer questions about a PDF with the navigation agent")
	serverURL := flag.String("server", "", "send the PDF to a running answering server instead of answering locally")
	outputPath := flag.String("output", "", "output file for results (default: evaluation_results_<timestamp>.json)")
	workers := flag.Int("workers", 1, "number of concurrent predictions")
	dbPath := flag.String("db", "", "also record the report in this sqlite database")
	flag.Parse()

	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	if *serverURL != "" && *pdfPath == "" {
		log.Fatalf("-server requires -pdf")
	}
	if (*imagePath != "") == (*pdfPath != "") {
		log.Fatalf("exactly one of -image or -pdf must be given")
	}

	items, err := eval.LoadSet(*evalSet)
	if err != nil {
		log.Fatalf("load eval set: %v", err)
	}
	if len(items) == 0 {
		log.Fatalf("eval set %s contains no questions", *evalSet)
	}

	predict, err := buildPredictor(cfg, *imagePath, *pdfPath, *serverURL)
	if err != nil {
		log.Fatalf("set up predictor: %v", err)
	}

	judgeCompleter := llm.NewClient(cfg.APIKey, cfg.APIBase, cfg.JudgeModelID)
	judge := eval.NewJudge(judgeCompleter)

	harness := eval.NewHarness(judge, predict, *workers)
	report := harness.Run(context.Background(), items)

	output := *outputPath
	if output == "" {
		output = fmt.Sprintf("evaluation_results_%s.json", time.Now().Format("20060102_150405"))
	}
	log.Infof("saving detailed results to %s", output)
	if err := report.Save(output); err != nil {
		log.Fatalf("save results: %v", err)
	}

	report.PrintSummary(os.Stdout)

	if *dbPath != "" {
		conn, err := db.Open(*dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer conn.Close()
		runID, err := eval.NewStore(conn).SaveReport(context.Background(), *evalSet, report)
		if err != nil {
			log.Fatalf("record evaluation run: %v", err)
		}
		log.Infof("recorded evaluation run %s", runID)
	}

	log.Infof("evaluation complete, accuracy %.1f%%", report.Accuracy())
}

// buildPredictor wires the prediction mode the flags select: a single page
// image, a PDF answered locally, or a PDF answered by a remote server.
func buildPredictor(cfg config.Config, imagePath, pdfPath, serverURL string) (eval.Predictor, error) {
	switch {
	case serverURL != "":
		pdfBytes, err := os.ReadFile(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("read pdf: %w", err)
		}
		remote := client.New(serverURL)
		return func(ctx context.Context, question string) (string, error) {
			resp, err := remote.Ask(ctx, pdfBytes, question)
			if err != nil {
				return "", err
			}
			return resp.AnswerString(), nil
		}, nil

	case pdfPath != "":
		pdfBytes, err := os.ReadFile(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("read pdf: %w", err)
		}
		completer := llm.NewClient(cfg.APIKey, cfg.APIBase, cfg.ModelID)
		answers := services.NewAnswerService(completer, nil, cfg.MaxSteps, cfg.MemoryWindow)
		return func(ctx context.Context, question string) (string, error) {
			resp, err := answers.Ask(ctx, pdfBytes, question)
			if err != nil {
				return "", err
			}
			return services.FlattenAnswer(resp.Answer), nil
		}, nil

	default:
		uri, err := imageDataURI(imagePath)
		if err != nil {
			return nil, err
		}
		completer := llm.NewClient(cfg.APIKey, cfg.APIBase, cfg.ModelID)
		vqa := services.NewVisualQAService(completer)
		return func(ctx context.Context, question string) (string, error) {
			return vqa.Answer(ctx, uri, question)
		}, nil
	}
}

func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
