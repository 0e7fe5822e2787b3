package pkgstore

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/plx/pkg"
)

// ErrCatalogue is returned when a catalogue document cannot be decoded.
var ErrCatalogue = pkg.MakeErrorf("invalid package catalogue")

// LoadCatalogue decodes a YAML sequence of packages from r:
//
//	# catalogue.yaml
//	- name: gimp
//	  version: 2.10.0
//	  source: gimp.org/NCOM
//	  type: k!t
//
// Unknown fields are rejected. A package without a name is an error; one
// without a type is a [TypeKit].
func LoadCatalogue(r io.Reader) ([]Package, error) {
	var pkgs []Package

	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(&pkgs); err != nil && err != io.EOF {
		return nil, ErrCatalogue.Wrap(err)
	}

	for i := range pkgs {
		if pkgs[i].Name == "" {
			return nil, ErrCatalogue.Wrapf("package %d has no name", i+1)
		}

		if pkgs[i].Type == "" {
			pkgs[i].Type = TypeKit
		}
	}

	return pkgs, nil
}
