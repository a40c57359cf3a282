package gdocai

import (
	"context"
	"fmt"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// Config identifies the Document AI processor to call.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Validate checks that every field needed to address a processor is set.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("document ai config is missing")
	}
	if c.ProjectID == "" || c.Location == "" || c.ProcessorID == "" {
		return fmt.Errorf("project_id, location and processor_id are required")
	}
	return nil
}

// Endpoint returns the regional API endpoint for the processor location.
func (c *Config) Endpoint() string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", c.Location)
}

// ProcessorName returns the full resource name of the processor.
func (c *Config) ProcessorName() string {
	return fmt.Sprintf(
		"projects/%s/locations/%s/processors/%s",
		c.ProjectID, c.Location, c.ProcessorID,
	)
}

// ProcessDocument sends document bytes to Google Document AI for processing
// and returns the raw Document proto response.
// An empty mimeType defaults to application/pdf.
func ProcessDocument(ctx context.Context, content []byte, mimeType string, cfg *Config) (*documentaipb.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document ai config: %w", err)
	}
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	opts := []option.ClientOption{option.WithEndpoint(cfg.Endpoint())}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	req := &documentaipb.ProcessRequest{
		Name: cfg.ProcessorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
		SkipHumanReview: true,
	}

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}

	return resp.Document, nil
}
