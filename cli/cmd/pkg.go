package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/plx/pkgstore"
)

// progressWidth is the width of the install progress bar in cells.
const progressWidth = 40

// Pkg groups the package store commands.
type Pkg struct {
	List    PkgList    `cmd:"" default:"1" help:"List the package catalogue."`
	Info    PkgInfo    `cmd:""             help:"Show the status of one package."`
	Install PkgInstall `cmd:""             help:"Install a package from the catalogue."`
}

// PkgList prints the package catalogue.
type PkgList struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`
}

// Run executes the pkg list command.
func (l *PkgList) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)
	all := s.Store.All()

	if l.Format != formatText {
		return encode(ctx, s.Stdout, l.Format, l.Indent, all)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "VERSION", "FILE", "SOURCE", "INSTALLED", "DESCRIPTION")

	for _, p := range all {
		installed := ""
		if s.Store.Installed(p.Name) {
			installed = "✓"
		}

		t.Row(p.Name, p.Version, p.File(), p.Source, installed, p.Description)
	}

	fmt.Fprintln(s.Stdout, t.Render())

	return nil
}

// PkgInfo prints what the store knows about one package.
type PkgInfo struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Name string `arg:"" help:"Package name." name:"name"`
}

// Run executes the pkg info command.
func (i *PkgInfo) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)
	st := s.Store.Check(i.Name)

	if i.Format != formatText {
		if err := encode(ctx, s.Stdout, i.Format, i.Indent, st); err != nil {
			return err
		}
	} else {
		writeStatus(s.Stdout, i.Name, st)
	}

	if !st.Exists {
		return pkgstore.ErrNotFound.Wrapf("%q", i.Name)
	}

	return nil
}

func writeStatus(w io.Writer, name string, st pkgstore.Status) {
	if st.Package == nil {
		fmt.Fprintf(w, "|| !! %s doesn't exist in the package registry.\n", name)

		return
	}

	p := st.Package
	fmt.Fprintf(w, "Name:         %s\n", p.Name)
	fmt.Fprintf(w, "Version:      %s\n", p.Version)
	fmt.Fprintf(w, "File:         %s\n", p.File())
	fmt.Fprintf(w, "Source:       %s\n", p.Source)

	if len(p.Dependencies) > 0 {
		fmt.Fprintf(w, "Dependencies: %s\n", strings.Join(p.Dependencies, ", "))
	}

	if p.Description != "" {
		fmt.Fprintf(w, "Description:  %s\n", p.Description)
	}

	fmt.Fprintf(w, "Installed:    %t\n", st.Installed)
}

// PkgInstall installs a package after asking for confirmation.
type PkgInstall struct {
	Yes bool `help:"Install without asking for confirmation." short:"y"`

	Name string `arg:"" help:"Package name." name:"name"`
}

// Run executes the pkg install command.
func (i *PkgInstall) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := sessionFrom(ctx)

	st := s.Store.Check(i.Name)
	if st.Package == nil {
		fmt.Fprintf(s.Stdout, "|| !! %s doesn't exist in the package registry.\n", i.Name)

		return pkgstore.ErrNotFound.Wrapf("%q", i.Name)
	}

	if st.Installed {
		fmt.Fprintf(s.Stdout, "|| %s is already installed.\n", st.Package.Name)

		return nil
	}

	if !i.Yes {
		fmt.Fprintln(s.Stdout, s.Store.Prompt(i.Name))

		if !confirm(s.Stdin) {
			fmt.Fprintln(s.Stdout, s.Store.InstallOutput(i.Name, false))

			return nil
		}

		fmt.Fprintln(s.Stdout, "|| Y")
	}

	p := st.Package
	fmt.Fprintf(s.Stdout, "|| Now installing %s from %s\n", p.File(), p.Source)

	bar := progress.New(
		progress.WithWidth(progressWidth),
		progress.WithFillCharacters('█', ' '),
		progress.WithSolidFill("4"),
	)

	err = s.Store.Install(ctx, p.Name, func(pr pkgstore.Progress) {
		fmt.Fprintf(s.Stdout, "|| %s %s\n", bar.ViewAs(float64(pr.Percent)/100), pr.Message)
	})
	if err != nil {
		return err
	}

	s.Logger.InfoContext(ctx, "package installed",
		slog.String("package", p.Name),
		slog.String("version", p.Version),
	)

	fmt.Fprintf(s.Stdout, "|| ✓ %s installed successfully!\n", p.Name)

	return nil
}

// confirm reads one line from r and reports whether it answers yes.
func confirm(r io.Reader) bool {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	}

	return false
}
