package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const fieldsURIPrefix = "odoo://models/"

func (s *Server) registerResources() {
	template := mcp.NewResourceTemplate(
		fieldsURIPrefix+"{model}/fields",
		"Model field metadata",
		mcp.WithTemplateDescription("Field names, types, labels and relations of a backend model."),
		mcp.WithTemplateMIMEType("application/json"),
	)
	s.mcp.AddResourceTemplate(template, s.readModelFields)
}

func (s *Server) readModelFields(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	model, err := modelFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	fields, err := s.deps.Gateway.ModelFields(ctx, model)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(payload),
		},
	}, nil
}

func modelFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, fieldsURIPrefix)
	if !ok {
		return "", fmt.Errorf("unsupported resource uri: %s", uri)
	}
	model, ok := strings.CutSuffix(rest, "/fields")
	if !ok || model == "" {
		return "", fmt.Errorf("unsupported resource uri: %s", uri)
	}
	return model, nil
}
