// Package parsing converts plain resume text into structured resume documents
// using LLM extraction.
package parsing

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/resume"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// MaxResumeTextLength bounds the text sent to the model
const MaxResumeTextLength = 50000

// maxDescriptionLength is the longest project description kept from the model
const maxDescriptionLength = 160

// ParseResumeText extracts a normalized ResumeDocument from plain resume text
func ParseResumeText(ctx context.Context, client llm.Client, text string) (*types.ResumeDocument, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &InputError{Field: "text", Reason: "resume text is required"}
	}
	if utf8.RuneCountInString(text) > MaxResumeTextLength {
		return nil, &InputError{Field: "text", Reason: "resume text is too long"}
	}

	prompt := prompts.Format(prompts.MustGet(prompts.ResumeFile, prompts.ParseResume), map[string]string{
		"ResumeText": text,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ProviderError{Op: "resume extraction", Cause: err}
	}

	doc, err := resume.DecodeResume([]byte(responseText))
	if err != nil {
		return nil, newExtractionError("model returned an invalid resume", err)
	}

	if isEmpty(doc) {
		return nil, newExtractionError("no resume content could be extracted", nil)
	}
	return doc, nil
}

// DescribeProject asks the model for a short portfolio-card description of a
// project from the text of its landing page.
func DescribeProject(ctx context.Context, client llm.Client, name, pageText string) (string, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.ResumeFile, prompts.DescribeProject), map[string]string{
		"Name":     name,
		"PageText": truncate(pageText, 4000),
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &ProviderError{Op: "project description", Cause: err}
	}

	var result struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return "", newExtractionError("project description is not JSON", err)
	}
	return truncate(strings.TrimSpace(result.Description), maxDescriptionLength), nil
}

func isEmpty(doc *types.ResumeDocument) bool {
	return doc.Basics.Name == "" &&
		len(doc.Work) == 0 &&
		len(doc.Skills) == 0 &&
		len(doc.Projects) == 0 &&
		len(doc.Education) == 0
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
