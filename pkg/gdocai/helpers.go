package gdocai

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ToJSON converts various types to a pretty-printed JSON string.
// It handles both protocol buffer messages and regular Go structs.
func ToJSON(data interface{}) (string, error) {
	switch v := data.(type) {
	case proto.Message:
		jsonData, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(jsonData), nil

	default:
		jsonData, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(jsonData), nil
	}
}

// DocumentFromJSON decodes a saved Document AI response. It accepts either a
// bare Document or a ProcessResponse wrapping one; unknown fields are ignored.
func DocumentFromJSON(data []byte) (*documentaipb.Document, error) {
	unmarshal := protojson.UnmarshalOptions{DiscardUnknown: true}

	var resp documentaipb.ProcessResponse
	if err := unmarshal.Unmarshal(data, &resp); err == nil && resp.GetDocument() != nil {
		return resp.GetDocument(), nil
	}

	doc := &documentaipb.Document{}
	if err := unmarshal.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}
