package services

import (
	"context"
	"fmt"
	"strings"

	"pdfpilot/internal/llm"
)

// visualQAPrompt fixes the extraction policy for single-page answering.
const visualQAPrompt = `You are an expert document information extractor that specializes in analyzing document images and answering questions with precision. Your task is to:

1. Carefully examine the provided document image/page
2. Extract relevant information that directly answers the question
3. Be precise and factual - only provide information that is clearly visible in the document
4. If the specific information requested is not present or not clearly readable in the current page, respond with "No answer in page"
5. When information is found, provide direct quotes or specific details from the document
6. For numerical data, dates, names, or specific terms, be exact in your extraction
7. If asked about document structure or layout, describe what you observe accurately

Focus on being a reliable information extraction tool rather than making inferences beyond what is explicitly shown in the document.`

// VisualQAService answers a question about a single page image with one
// model call, without the navigation loop.
type VisualQAService struct {
	completer Completer
}

func NewVisualQAService(completer Completer) *VisualQAService {
	return &VisualQAService{completer: completer}
}

// Answer asks the question about one page image given as a data URI. The
// model answers "No answer in page" when the page lacks the information.
func (s *VisualQAService) Answer(ctx context.Context, imageDataURI, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is empty")
	}
	content, err := s.completer.Complete(ctx, llm.Request{
		System: visualQAPrompt,
		Turns: []llm.Turn{{
			Role:   llm.RoleUser,
			Text:   question,
			Images: []string{imageDataURI},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("visual qa: %w", err)
	}
	return strings.TrimSpace(content), nil
}
