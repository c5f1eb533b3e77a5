package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pdfpilot/pkg/client"
)

func main() {
	// NOTE: This program needs a running server (go run ./cmd/server) with
	// Ghostscript installed on the server host, plus a PDF to ask about.
	serverURL := "http://localhost:8000"
	pdfPath := "eval/sample.pdf"
	question := "What is the total amount due on the invoice?"

	if len(os.Args) > 1 {
		pdfPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		question = os.Args[2]
	}

	qa := client.New(serverURL)

	fmt.Println("Testing PDF QA Client Package...")
	fmt.Println("================================")

	// Test 1: Health check
	fmt.Println("\n1. Testing health check:")

	if err := qa.Health(context.Background()); err != nil {
		log.Fatalf("Health check failed: %v (is the server running at %s?)", err, serverURL)
	}
	fmt.Printf("✓ Server at %s is healthy\n", serverURL)

	// Test 2: Basic question
	fmt.Println("\n2. Testing basic question:")
	fmt.Printf("PDF: %s\n", pdfPath)
	fmt.Printf("Question: %q\n", question)

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		log.Fatalf("Could not read PDF: %v", err)
	}

	resp, err := qa.Ask(context.Background(), pdfBytes, question)
	if err != nil {
		log.Printf("Ask failed: %v", err)
	} else {
		answer := resp.AnswerString()
		fmt.Printf("✓ Success! Answer found on page %d\n", resp.Page)
		fmt.Printf("  Answer: %s\n", answer[:min(200, len(answer))])
	}

	// Test 3: Ask with a short timeout
	fmt.Println("\n3. Testing ask with timeout:")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp3, err := qa.Ask(ctx, pdfBytes, question)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			fmt.Printf("✗ Ask timed out (expected behavior test)\n")
		} else {
			log.Printf("Timeout ask failed: %v", err)
		}
	} else {
		fmt.Printf("✓ Success! Answered within timeout on page %d\n", resp3.Page)
	}

	// Test 4: Error handling with an empty question
	fmt.Println("\n4. Testing error handling:")

	_, err = qa.Ask(context.Background(), pdfBytes, "")
	if err != nil {
		fmt.Printf("✓ Error handling works: %v\n", err)
	} else {
		fmt.Printf("✗ Empty question was accepted\n")
	}

	fmt.Println("\n================================")
	fmt.Println("PDF QA Client Test Complete!")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
