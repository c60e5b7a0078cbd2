package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/amara-beauty/storefront-cms/pages"
)

var ErrSectionValidation = errors.New("section config validation failed")

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces section config issues with schema-aware
// context.
type PayloadValidationError struct {
	Section pages.SectionType
	Issues  []ValidationIssue
	Cause   error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSectionValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.Section, strings.Join(parts, "; "))
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSectionValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// Schemas for the section config union. Unknown payload fields pass through
// so older stored configs survive new renderer fields; required keys are the
// floor each renderer needs to produce output.
var sectionSchemas = map[pages.SectionType]string{
	pages.SectionHero: `{
		"type": "object",
		"properties": {
			"heading": {"type": "string", "minLength": 1},
			"subheading": {"type": "string"},
			"image_url": {"type": "string"},
			"video_url": {"type": "string"},
			"primary_cta": {"$ref": "#/$defs/cta"},
			"secondary_cta": {"$ref": "#/$defs/cta"}
		},
		"required": ["heading"],
		"$defs": {"cta": {"type": "object", "properties": {"label": {"type": "string"}, "href": {"type": "string"}}, "required": ["label", "href"]}}
	}`,
	pages.SectionCategoriesGrid: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"category_ids": {"type": "array", "items": {"type": "string"}},
			"limit": {"type": "integer", "minimum": 0}
		}
	}`,
	pages.SectionFeaturedProducts: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"subtitle": {"type": "string"},
			"product_ids": {"type": "array", "items": {"type": "string"}},
			"limit": {"type": "integer", "minimum": 0}
		}
	}`,
	pages.SectionStory: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"body_html": {"type": "string"},
			"image_url": {"type": "string"}
		}
	}`,
	pages.SectionTestimonials: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"quote": {"type": "string", "minLength": 1},
						"author": {"type": "string"},
						"avatar_url": {"type": "string"},
						"rating": {"type": "integer", "minimum": 0, "maximum": 5}
					},
					"required": ["quote"]
				}
			}
		},
		"required": ["items"]
	}`,
	pages.SectionFAQ: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string", "minLength": 1},
						"answer": {"type": "string"}
					},
					"required": ["question", "answer"]
				}
			}
		},
		"required": ["items"]
	}`,
	pages.SectionCTABanner: `{
		"type": "object",
		"properties": {
			"text": {"type": "string", "minLength": 1},
			"background_image_url": {"type": "string"}
		},
		"required": ["text"]
	}`,
	pages.SectionBestSellers: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"limit": {"type": "integer", "minimum": 0}
		}
	}`,
	pages.SectionLaunchOffer: `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"description": {"type": "string"},
			"product_id": {"type": "string"},
			"countdown_until": {"type": "string"}
		}
	}`,
	pages.SectionCustomContent: `{
		"type": "object",
		"properties": {
			"html": {"type": "string"}
		},
		"required": ["html"]
	}`,
}

// SectionValidator validates section config payloads against the per-type
// schemas. Compile once and share; Validate is safe for concurrent use.
type SectionValidator struct {
	compiled map[pages.SectionType]*jsonschema.Schema
}

// NewSectionValidator compiles the section schemas.
func NewSectionValidator() (*SectionValidator, error) {
	compiled := make(map[pages.SectionType]*jsonschema.Schema, len(sectionSchemas))
	for sectionType, source := range sectionSchemas {
		schema, err := compileSchema(string(sectionType), source)
		if err != nil {
			return nil, fmt.Errorf("compile %s schema: %w", sectionType, err)
		}
		compiled[sectionType] = schema
	}
	return &SectionValidator{compiled: compiled}, nil
}

// MustNewSectionValidator compiles the section schemas, panicking on error.
// The schemas are static, so a failure is a programming mistake.
func MustNewSectionValidator() *SectionValidator {
	validator, err := NewSectionValidator()
	if err != nil {
		panic(err)
	}
	return validator
}

// Validate checks raw against the schema registered for sectionType. An
// unrecognized type is rejected; an empty payload validates as {}.
func (v *SectionValidator) Validate(sectionType pages.SectionType, raw json.RawMessage) error {
	tag, ok := pages.ParseSectionType(string(sectionType))
	if !ok {
		return pages.ErrSectionTypeInvalid
	}
	schema, ok := v.compiled[tag]
	if !ok {
		return pages.ErrSectionTypeInvalid
	}

	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &PayloadValidationError{
			Section: tag,
			Issues:  []ValidationIssue{{Message: "payload is not valid JSON"}},
			Cause:   err,
		}
	}

	if err := schema.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &PayloadValidationError{
				Section: tag,
				Issues:  collectValidationIssues(validationErr),
				Cause:   err,
			}
		}
		return &PayloadValidationError{Section: tag, Cause: err}
	}
	return nil
}

func compileSchema(name, source string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader([]byte(source))); err != nil {
		return nil, err
	}
	return compiler.Compile(resource)
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
