package client_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"pdfpilot/pkg/client"
)

func ExampleClient_Ask() {
	pdfBytes, err := os.ReadFile("statement.pdf")
	if err != nil {
		log.Fatal(err)
	}

	c := client.New("http://localhost:8000")

	resp, err := c.Ask(context.Background(), pdfBytes, "What is the total amount due?")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Answer: %s (page %d)\n", resp.AnswerString(), resp.Page)
}

func ExampleClient_Health() {
	c := client.New("http://localhost:8000")

	if err := c.Health(context.Background()); err != nil {
		fmt.Println("server unavailable:", err)
		return
	}
	fmt.Println("server is up")
}
