package chart

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/skychart/internal/ctxlog"
	"github.com/vk/skychart/internal/theme"
)

// DefaultData is the catalogue used by chart blocks that set no data
// attribute. It matches the CLI's --data default.
const DefaultData = "data/stars.csv"

// Spec is the fully resolved description of one rendering job.
type Spec struct {
	Name       string
	Data       string
	Theme      string
	ShowLabels bool
	Output     string
}

// hclChartFile is the top-level structure of a chart definition file.
type hclChartFile struct {
	Charts []*hclChart `hcl:"chart,block"`
}

// hclChart captures a chart block. Attributes are kept as raw expressions
// and evaluated in translate, so decoding and value errors are reported
// separately.
type hclChart struct {
	Name       string         `hcl:"name,label"`
	Data       hcl.Expression `hcl:"data,optional"`
	Theme      hcl.Expression `hcl:"theme,optional"`
	ShowLabels hcl.Expression `hcl:"show_labels,optional"`
	Output     hcl.Expression `hcl:"output,optional"`
}

// Load parses chart definitions from path, which may be a single .hcl file
// or a directory searched recursively. Specs are returned in file/block
// order. Theme names in chart blocks are not validated here: an
// unregistered name reaches the renderer and falls back to the default
// theme there.
func Load(ctx context.Context, path string) ([]Spec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading chart definitions.", "path", path)

	files, err := findChartFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl chart files found in %s", path)
	}

	parser := hclparse.NewParser()
	var specs []Spec
	seen := make(map[string]string)
	for _, file := range files {
		fileSpecs, err := loadFile(file, parser)
		if err != nil {
			return nil, err
		}
		for _, spec := range fileSpecs {
			if prev, ok := seen[spec.Name]; ok {
				return nil, fmt.Errorf("duplicate chart %q in %s (first defined in %s)", spec.Name, file, prev)
			}
			seen[spec.Name] = file
			specs = append(specs, spec)
		}
	}

	logger.Debug("Chart definitions loaded.", "files", len(files), "charts", len(specs))
	return specs, nil
}

// findChartFiles resolves path into the ordered set of .hcl files to parse.
func findChartFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open chart definitions: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hcl") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan chart definitions in %s: %w", path, err)
	}
	return files, nil
}

// loadFile parses one definition file and translates its chart blocks.
func loadFile(path string, parser *hclparse.Parser) ([]Spec, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse chart file %s: %w", path, diags)
	}

	var parsed hclChartFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode chart file %s: %w", path, diags)
	}

	specs := make([]Spec, 0, len(parsed.Charts))
	for _, block := range parsed.Charts {
		spec, err := translate(block, path)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// translate evaluates a chart block's expressions and fills in defaults.
func translate(block *hclChart, path string) (Spec, error) {
	spec := Spec{
		Name:   block.Name,
		Data:   DefaultData,
		Theme:  theme.DefaultName,
		Output: block.Name + ".png",
	}

	if v, ok, err := evalString(block.Data, "data", block.Name, path); err != nil {
		return Spec{}, err
	} else if ok {
		spec.Data = v
	}
	if v, ok, err := evalString(block.Theme, "theme", block.Name, path); err != nil {
		return Spec{}, err
	} else if ok {
		spec.Theme = v
	}
	if v, ok, err := evalString(block.Output, "output", block.Name, path); err != nil {
		return Spec{}, err
	} else if ok {
		spec.Output = v
	}
	if v, ok, err := evalBool(block.ShowLabels, "show_labels", block.Name, path); err != nil {
		return Spec{}, err
	} else if ok {
		spec.ShowLabels = v
	}
	return spec, nil
}

// evalValue evaluates an attribute expression to a concrete cty value. The
// second result is false when the attribute was absent or null.
func evalValue(expr hcl.Expression, attr, chart, path string) (cty.Value, bool, error) {
	if expr == nil {
		return cty.NilVal, false, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, fmt.Errorf("chart %q in %s: attribute %s: %w", chart, path, attr, diags)
	}
	if val.IsNull() {
		return cty.NilVal, false, nil
	}
	return val, true, nil
}

func evalString(expr hcl.Expression, attr, chart, path string) (string, bool, error) {
	val, ok, err := evalValue(expr, attr, chart, path)
	if err != nil || !ok {
		return "", ok, err
	}
	if val.Type() != cty.String {
		return "", false, fmt.Errorf("chart %q in %s: attribute %s must be a string", chart, path, attr)
	}
	return val.AsString(), true, nil
}

func evalBool(expr hcl.Expression, attr, chart, path string) (bool, bool, error) {
	val, ok, err := evalValue(expr, attr, chart, path)
	if err != nil || !ok {
		return false, ok, err
	}
	if val.Type() != cty.Bool {
		return false, false, fmt.Errorf("chart %q in %s: attribute %s must be a bool", chart, path, attr)
	}
	return val.True(), true, nil
}
