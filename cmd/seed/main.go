// Seed tool: fills a running instance with fake posts through the HTTP
// API. Useful for poking at /posts and the playground during development.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	var addr string
	var count int
	flag.StringVar(&addr, "addr", "http://127.0.0.1:8000", "base address of the service")
	flag.IntVar(&count, "n", 25, "number of posts to create")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())
	client := &http.Client{Timeout: 5 * time.Second}

	start := time.Now()
	for i := 0; i < count; i++ {
		id, err := createPost(client, addr)
		if err != nil {
			log.Fatalf("create post %d: %v", i+1, err)
		}
		log.Printf("created %s", id)
	}
	log.Printf("seeded %d posts in %s", count, time.Since(start).Truncate(time.Millisecond))
}

func createPost(client *http.Client, addr string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"title":   gofakeit.Sentence(4),
		"content": gofakeit.Paragraph(2, 4, 12, " "),
	})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(addr+"/post", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, out)
	}
	return string(out), nil
}
