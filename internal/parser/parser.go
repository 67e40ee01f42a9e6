// Package parser converts raw JSON text into the ordered value model. A
// plain json.Unmarshal into map[string]any would lose member order, so the
// decode walks the token stream instead.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/jasondoong/formiko/internal/errors"
	"github.com/jasondoong/formiko/internal/models"
)

// Parse decodes a single JSON document from reader.
func Parse(reader io.Reader) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParseError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewParseError(
				fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
				errors.ErrInvalidJSON,
			)
		}
		return nil, errors.NewParseError("failed to decode JSON", err)
	}

	// Anything but whitespace after the first document is an error.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, errors.NewParseError("invalid trailing data after first JSON value", err)
		}
		return nil, errors.NewParseError(
			fmt.Sprintf("multiple JSON values found at the root (next token %v)", tok),
			errors.ErrMultipleJSON,
		)
	}

	return root, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewParseError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

// decodeValue reads the next complete value from the token stream.
func decodeValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return models.String(t), nil
	case bool:
		return models.Bool(t), nil
	case json.Number:
		return models.Number(t), nil
	case nil:
		return models.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (models.Value, error) {
	obj := &models.Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys keep their first position, last value wins.
		obj.Set(key, val)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (models.Value, error) {
	arr := &models.Array{}
	for dec.More() {
		el, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
	}
	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
