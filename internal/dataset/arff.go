package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// DecodeARFF reads an ARFF document into its schema and raw data rows.
func DecodeARFF(r io.Reader) (*Schema, [][]string, error) {
	var (
		schema = &Schema{}
		rows   [][]string
		inData bool
		lineNo int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if inData {
			fields, err := splitValues(line)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if len(fields) != len(schema.Attributes) {
				return nil, nil, fmt.Errorf(
					"%w: line %d has %d values, expected %d", ErrMalformed, lineNo, len(fields), len(schema.Attributes))
			}
			rows = append(rows, fields)
			continue
		}

		keyword, rest := splitKeyword(line)
		switch strings.ToLower(keyword) {
		case "@relation":
			schema.Relation = unquote(rest)
		case "@attribute":
			attr, err := parseAttribute(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			schema.Attributes = append(schema.Attributes, attr)
		case "@data":
			if len(schema.Attributes) == 0 {
				return nil, nil, fmt.Errorf("%w: line %d: @data before any @attribute", ErrMalformed, lineNo)
			}
			inData = true
		default:
			return nil, nil, fmt.Errorf("%w: line %d: unexpected %q", ErrMalformed, lineNo, keyword)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading arff: %w", err)
	}
	if !inData {
		return nil, nil, fmt.Errorf("%w: no @data section", ErrMalformed)
	}
	return schema, rows, nil
}

func parseAttribute(decl string) (Attribute, error) {
	name, typ := splitName(decl)
	if name == "" || typ == "" {
		return Attribute{}, fmt.Errorf("%w: attribute declaration %q", ErrMalformed, decl)
	}
	if strings.HasPrefix(typ, "{") {
		if !strings.HasSuffix(typ, "}") {
			return Attribute{}, fmt.Errorf("%w: unterminated value set for %q", ErrMalformed, name)
		}
		values, err := splitValues(typ[1 : len(typ)-1])
		if err != nil {
			return Attribute{}, fmt.Errorf("value set for %q: %w", name, err)
		}
		return Attribute{Name: name, Kind: KindCategorical, Values: values}, nil
	}
	switch strings.ToLower(typ) {
	case "real", "numeric", "integer":
		return Attribute{Name: name, Kind: KindReal}, nil
	case "string":
		return Attribute{Name: name, Kind: KindCategorical}, nil
	default:
		return Attribute{}, fmt.Errorf("%w: unsupported type %q for %q", ErrMalformed, typ, name)
	}
}

func splitKeyword(line string) (string, string) {
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], strings.TrimSpace(line[idx+1:])
}

// splitName separates a possibly quoted attribute name from its type.
func splitName(decl string) (string, string) {
	if decl == "" {
		return "", ""
	}
	if q := decl[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(decl[1:], q)
		if end < 0 {
			return "", ""
		}
		return decl[1 : end+1], strings.TrimSpace(decl[end+2:])
	}
	name, typ := splitKeyword(decl)
	return name, typ
}

// splitValues splits a comma separated list, keeping commas inside values
// that open with a single or double quote. Values are trimmed and unquoted.
func splitValues(s string) ([]string, error) {
	var (
		values []string
		quote  byte
		start  int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case (c == '\'' || c == '"') && strings.TrimSpace(s[start:i]) == "":
			quote = c
		case c == ',':
			values = append(values, unquote(strings.TrimSpace(s[start:i])))
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrMalformed, s)
	}
	return append(values, unquote(strings.TrimSpace(s[start:]))), nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
