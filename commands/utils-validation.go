package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"pkgreg/types"

	"gopkg.in/yaml.v3"
)

// placeholderAuthor is the default value package templates ship with;
// a release carrying it was never personalized.
const placeholderAuthor = "your-github-username"

// emailPattern requires exactly one '@', a dotted domain, and no whitespace
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type fieldKind int

const (
	kindString fieldKind = iota
	kindMapping
	kindSequence
	kindAuthor // mapping form canonical, legacy bare string accepted
)

type schemaField struct {
	key      string
	kind     fieldKind
	required bool
}

// metadataSchema is the required shape of a package.yaml document,
// checked in declaration order.
var metadataSchema = []schemaField{
	{key: "name", kind: kindString, required: true},
	{key: "description", kind: kindString, required: true},
	{key: "author", kind: kindAuthor, required: true},
	{key: "provides", kind: kindMapping, required: true},
}

var authorSchema = []schemaField{
	{key: "name", kind: kindString, required: true},
	{key: "email", kind: kindString, required: true},
}

// ValidateMetadata runs both validation phases over a raw metadata
// document and returns its typed decoding on acceptance. The schema phase
// walks the untyped parse so a mistyped field reports as WrongType rather
// than as a decode failure. tag and expectedName are optional; empty
// means the corresponding check is skipped.
func ValidateMetadata(data []byte, rootDir, tag, expectedName string) (types.Metadata, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Metadata{}, fmt.Errorf("failed to parse metadata: %v", err)
	}
	if err := ValidateSchema(doc); err != nil {
		return types.Metadata{}, err
	}
	var meta types.Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return types.Metadata{}, fmt.Errorf("failed to decode metadata: %v", err)
	}
	if err := ValidateContent(meta, rootDir, tag, expectedName); err != nil {
		return types.Metadata{}, err
	}
	return meta, nil
}

// ValidateSchema walks the metadata schema table and reports the first
// missing or mistyped field. Top-level keys are checked in table order,
// then the nested author keys.
func ValidateSchema(doc map[string]interface{}) error {
	for _, field := range metadataSchema {
		value, present := doc[field.key]
		if !present {
			if field.required {
				return validationErrorf(ErrMissingField, field.key, "missing required key in metadata: '%s'", field.key)
			}
			continue
		}
		if err := checkFieldKind(field, value); err != nil {
			return err
		}
	}
	if mapping, ok := doc["author"].(map[string]interface{}); ok {
		return validateAuthorSchema(mapping)
	}
	return nil
}

// validateAuthorSchema checks the nested author mapping against its own table
func validateAuthorSchema(author map[string]interface{}) error {
	for _, field := range authorSchema {
		key := "author." + field.key
		value, present := author[field.key]
		if !present {
			return validationErrorf(ErrMissingField, key, "missing required key in metadata: '%s'", key)
		}
		if _, ok := value.(string); !ok {
			return validationErrorf(ErrWrongType, key, "key '%s' has wrong type: expected string, got %s", key, yamlKindName(value))
		}
	}
	return nil
}

func checkFieldKind(field schemaField, value interface{}) error {
	var expected string
	switch field.kind {
	case kindString:
		if _, ok := value.(string); ok {
			return nil
		}
		expected = "string"
	case kindMapping:
		if _, ok := value.(map[string]interface{}); ok {
			return nil
		}
		expected = "mapping"
	case kindSequence:
		if _, ok := value.([]interface{}); ok {
			return nil
		}
		expected = "sequence"
	case kindAuthor:
		switch value.(type) {
		case string, map[string]interface{}:
			return nil
		}
		expected = "mapping or string"
	}
	return validationErrorf(ErrWrongType, field.key, "key '%s' has wrong type: expected %s, got %s", field.key, expected, yamlKindName(value))
}

// yamlKindName names the structural kind of a decoded YAML value
func yamlKindName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, float64:
		return "number"
	case map[string]interface{}:
		return "mapping"
	case []interface{}:
		return "sequence"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// ValidateContent runs the content sanity checks on a metadata document
// that already passed the schema phase. rootDir is the package root the
// asset paths resolve against.
func ValidateContent(meta types.Metadata, rootDir, tag, expectedName string) error {
	if tag != "" {
		if _, err := ParseVersionTag(tag); err != nil {
			return validationErrorf(ErrInvalidTag, "tag", "%v", err)
		}
	}
	if expectedName != "" && meta.Name != expectedName {
		return validationErrorf(ErrNameMismatch, "name", "package name mismatch: expected '%s', but metadata has '%s'", expectedName, meta.Name)
	}
	if strings.TrimSpace(meta.Name) == "" {
		return validationErrorf(ErrEmptyField, "name", "field 'name' must not be empty")
	}
	if strings.TrimSpace(meta.Description) == "" {
		return validationErrorf(ErrEmptyField, "description", "field 'description' must not be empty")
	}
	if err := validateAuthorContent(meta.Author); err != nil {
		return err
	}
	return validateProvides(meta.Provides, rootDir)
}

func validateAuthorContent(author types.Author) error {
	if strings.TrimSpace(author.Name) == "" {
		return validationErrorf(ErrEmptyField, "author.name", "field 'author.name' must not be empty")
	}
	if strings.Contains(author.Name, placeholderAuthor) {
		return validationErrorf(ErrPlaceholder, "author.name", "placeholder author value '%s' detected: please update it", placeholderAuthor)
	}
	if strings.TrimSpace(author.Email) == "" {
		return validationErrorf(ErrEmptyField, "author.email", "field 'author.email' must not be empty")
	}
	if !emailPattern.MatchString(author.Email) {
		return validationErrorf(ErrInvalidEmail, "author.email", "'%s' is not a valid email address", author.Email)
	}
	return nil
}

// validateProvides requires at least one of code or assets and checks
// every declared asset path for safety and existence.
func validateProvides(provides types.Provides, rootDir string) error {
	if provides.Code == "" && len(provides.Assets) == 0 {
		return validationErrorf(ErrEmptyProvides, "provides", "'provides' must declare at least one of 'code' or 'assets'")
	}
	for _, asset := range provides.Assets {
		if strings.TrimSpace(asset.Path) == "" {
			return validationErrorf(ErrEmptyField, "path", "asset entry is missing the 'path' key")
		}
		// Traversal check comes first so validation never touches a
		// path outside the package root.
		if pathEscapesRoot(asset.Path) {
			return validationErrorf(ErrUnsafePath, asset.Path, "invalid asset path '%s': paths must not use '..'", asset.Path)
		}
		assetPath := filepath.Join(rootDir, asset.Path)
		if _, err := os.Stat(assetPath); os.IsNotExist(err) {
			return validationErrorf(ErrAssetNotFound, asset.Path, "asset path '%s' does not exist", asset.Path)
		} else if err != nil {
			return fmt.Errorf("failed to check asset path '%s': %v", asset.Path, err)
		}
	}
	return nil
}

// pathEscapesRoot reports whether a relative asset path contains a
// parent-directory traversal segment.
func pathEscapesRoot(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}
