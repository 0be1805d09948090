package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"erlang-solutions.com/argstore/pkg/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "logging"},
		{Type: "args"},
	},
}

var loggingSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "level"},
		{Name: "logfile"},
	},
}

func loadHCL(path string) (Config, error) {
	cfg := Config{Path: path, Args: make(map[string][]string)}

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, errors.WrapWithBase(errors.ErrConfigLoad, path, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return cfg, errors.WrapWithBase(errors.ErrConfigLoad, path, diags)
	}

	for _, block := range content.Blocks {
		var err error
		switch block.Type {
		case "logging":
			err = decodeLogging(block.Body, &cfg.Logging)
		case "args":
			err = decodeArgs(block.Body, cfg.Args)
		}
		if err != nil {
			return cfg, errors.WrapWithBase(errors.ErrConfigLoad, path, err)
		}
	}
	return cfg, nil
}

func decodeLogging(body hcl.Body, logging *Logging) error {
	content, diags := body.Content(loggingSchema)
	if diags.HasErrors() {
		return diags
	}
	targets := map[string]*string{
		"level":   &logging.Level,
		"logfile": &logging.LogFile,
	}
	for name, attr := range content.Attributes {
		values, err := attrValues(attr)
		if err != nil {
			return err
		}
		if len(values) != 1 {
			return fmt.Errorf("logging.%s must be a single value", name)
		}
		*targets[name] = values[0]
	}
	return nil
}

func decodeArgs(body hcl.Body, out map[string][]string) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	for name, attr := range attrs {
		values, err := attrValues(attr)
		if err != nil {
			return err
		}
		out[name] = values
	}
	return nil
}

func attrValues(attr *hcl.Attribute) ([]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	ty := val.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		out := make([]string, 0, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			s, err := ctyScalar(attr.Name, elem)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}

	s, err := ctyScalar(attr.Name, val)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func ctyScalar(name string, val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("%s: value is not set", name)
	}
	switch val.Type() {
	case cty.String:
		return val.AsString(), nil
	case cty.Bool:
		return boolText(val.True()), nil
	case cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	default:
		return "", fmt.Errorf("%s: unsupported value type %s", name, val.Type().FriendlyName())
	}
}
