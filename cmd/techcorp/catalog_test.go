package main

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

func TestCatalogSection(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}

	for _, name := range catalogSections {
		t.Run(name, func(t *testing.T) {
			if _, err := catalogSection(c, name); err != nil {
				t.Errorf("catalogSection(%q) error: %v", name, err)
			}
		})
	}

	_, err = catalogSection(c, "pricing")
	if errors.CodeOf(err) != "T202" {
		t.Errorf("unknown section code = %q, want T202", errors.CodeOf(err))
	}
}

func TestPrintSection(t *testing.T) {
	products := []catalog.Product{{ID: 7, Name: "云端协作平台", Category: "云服务", Price: "定制"}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printSection(&buf, "products", products, "table"); err != nil {
			t.Fatalf("printSection: %v", err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, "ID") || !strings.Contains(out, "云端协作平台") {
			t.Errorf("table output:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printSection(&buf, "products", products, "json"); err != nil {
			t.Fatalf("printSection: %v", err)
		}
		if !strings.Contains(buf.String(), `"name": "云端协作平台"`) {
			t.Errorf("json output:\n%s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printSection(&buf, "products", products, "yaml"); err != nil {
			t.Fatalf("printSection: %v", err)
		}
		var decoded map[string][]catalog.Product
		if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("yaml output does not parse: %v", err)
		}
		if len(decoded["products"]) != 1 || decoded["products"][0].ID != 7 {
			t.Errorf("decoded = %+v", decoded)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		if err := printSection(&bytes.Buffer{}, "products", products, "xml"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestPrintSummary(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	var buf bytes.Buffer
	if err := printSummary(&buf, c); err != nil {
		t.Fatalf("printSummary: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(catalogSections) {
		t.Fatalf("summary has %d lines, want %d:\n%s", len(lines), len(catalogSections), buf.String())
	}
	for i, name := range catalogSections {
		if !strings.HasPrefix(lines[i], name) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], name)
		}
	}
}
