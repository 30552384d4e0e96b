package cvdata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Slavigrad/cv-export/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var cvSchema []byte

//go:embed default_cv.json
var defaultCV []byte

// ValidationError reports schema violations found in a CV document.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("cv validation failed:\n")
	for i, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, v))
	}
	return sb.String()
}

// Parse validates raw JSON against the CV schema and unmarshals it.
func Parse(data []byte) (*types.CVData, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(cvSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate cv data: %w", err)
	}
	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Violations = append(ve.Violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, ve
	}

	var cv types.CVData
	if err := json.Unmarshal(data, &cv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cv data: %w", err)
	}
	return &cv, nil
}

// Load reads and parses a CV file.
func Load(path string) (*types.CVData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cv file %s: %w", path, err)
	}
	cv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cv file %s: %w", path, err)
	}
	return cv, nil
}

// Default returns the embedded portfolio CV.
func Default() *types.CVData {
	cv, err := Parse(defaultCV)
	if err != nil {
		// The embedded record is validated by tests; failing here means a
		// broken build, not bad input.
		panic(fmt.Sprintf("embedded default cv is invalid: %v", err))
	}
	return cv
}
