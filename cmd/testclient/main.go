package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	serverURL  = flag.String("url", "http://localhost:8000", "Translation server base URL")
	sourceLang = flag.String("source", "en", "Source language code (en or ha)")
	targetLang = flag.String("target", "ha", "Target language code (en or ha)")
	textFile   = flag.String("file", "", "Path to text file to translate")
	text       = flag.String("text", "", "Text to translate (if file not provided)")
	batch      = flag.Bool("batch", false, "Treat each input line as a separate batch item")
	showInfo   = flag.Bool("info", false, "Print model info and supported languages, then exit")
)

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
}

type batchRequest struct {
	Texts      []string `json:"texts"`
	SourceLang string   `json:"source_lang,omitempty"`
	TargetLang string   `json:"target_lang,omitempty"`
}

type translateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	Translation    string `json:"translation"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
}

type batchResponse struct {
	Translations []translateResponse `json:"translations"`
	Count        int                 `json:"count"`
}

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	client := &http.Client{Timeout: 5 * time.Minute}

	if *showInfo {
		printEndpoint(logger, client, *serverURL+"/model/info", "MODEL INFO")
		printEndpoint(logger, client, *serverURL+"/languages", "SUPPORTED LANGUAGES")
		return
	}

	var input string
	if *textFile != "" {
		data, err := os.ReadFile(*textFile)
		if err != nil {
			logger.WithError(err).Fatalf("Failed to read file: %s", *textFile)
		}
		input = string(data)
	} else if *text != "" {
		input = *text
	} else {
		logger.Fatal("Either -file or -text must be provided")
	}

	if strings.TrimSpace(input) == "" {
		logger.Fatal("Text to translate is empty")
	}

	logger.WithFields(logrus.Fields{
		"server":      *serverURL,
		"source_lang": *sourceLang,
		"target_lang": *targetLang,
		"text_length": len(input),
		"batch":       *batch,
	}).Info("Sending translation request...")

	startTime := time.Now()
	if *batch {
		runBatch(logger, client, input)
	} else {
		runSingle(logger, client, input)
	}

	logger.WithFields(logrus.Fields{
		"duration_seconds": time.Since(startTime).Seconds(),
	}).Info("Translation completed")
}

func runSingle(logger *logrus.Logger, client *http.Client, input string) {
	body := mustJSON(logger, translateRequest{
		Text:       input,
		SourceLang: *sourceLang,
		TargetLang: *targetLang,
	})

	data := post(logger, client, *serverURL+"/translate", body)

	var resp translateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		logger.WithError(err).Fatal("Failed to decode response")
	}

	separator := strings.Repeat("=", 80)
	dashLine := strings.Repeat("-", 80)

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("TRANSLATION RESULTS")
	fmt.Println(separator)
	fmt.Printf("\nSource Language: %s\n", resp.SourceLang)
	fmt.Printf("Target Language: %s\n", resp.TargetLang)
	fmt.Println()
	fmt.Println(dashLine)
	fmt.Println("ORIGINAL TEXT:")
	fmt.Println(dashLine)
	fmt.Println(resp.OriginalText)
	fmt.Println()
	fmt.Println(dashLine)
	fmt.Println("TRANSLATED TEXT:")
	fmt.Println(dashLine)
	fmt.Println(resp.Translation)
	fmt.Println()
	fmt.Println(separator)
}

func runBatch(logger *logrus.Logger, client *http.Client, input string) {
	var texts []string
	for _, line := range strings.Split(input, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			texts = append(texts, line)
		}
	}
	if len(texts) == 0 {
		logger.Fatal("No non-empty lines to translate")
	}

	body := mustJSON(logger, batchRequest{
		Texts:      texts,
		SourceLang: *sourceLang,
		TargetLang: *targetLang,
	})

	data := post(logger, client, *serverURL+"/translate/batch", body)

	var resp batchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		logger.WithError(err).Fatal("Failed to decode response")
	}

	separator := strings.Repeat("=", 80)
	dashLine := strings.Repeat("-", 80)

	fmt.Println()
	fmt.Println(separator)
	fmt.Printf("BATCH TRANSLATION RESULTS (%d items)\n", resp.Count)
	fmt.Println(separator)
	for i, tr := range resp.Translations {
		fmt.Printf("\n[%d] %s -> %s\n", i+1, tr.SourceLang, tr.TargetLang)
		fmt.Println(dashLine)
		fmt.Println(tr.OriginalText)
		fmt.Println("  =>")
		fmt.Println(tr.Translation)
	}
	fmt.Println()
	fmt.Println(separator)
}

func printEndpoint(logger *logrus.Logger, client *http.Client, url, title string) {
	resp, err := client.Get(url)
	if err != nil {
		logger.WithError(err).Fatalf("Failed to reach %s", url)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read response")
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		pretty.Write(data)
	}

	separator := strings.Repeat("=", 80)
	fmt.Println()
	fmt.Println(separator)
	fmt.Println(title)
	fmt.Println(separator)
	fmt.Println(pretty.String())
}

func post(logger *logrus.Logger, client *http.Client, url string, body []byte) []byte {
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.WithError(err).Fatal("Request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Fatal("Failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(data),
		}).Fatal("Server returned an error")
	}

	return data
}

func mustJSON(logger *logrus.Logger, v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		logger.WithError(err).Fatal("Failed to encode request")
	}
	return data
}
