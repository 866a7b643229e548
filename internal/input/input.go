// Package input implements the three interactive user-input forms a task
// config can declare in place of a literal value: BoolInput, Input[T], and
// SelectD[T].
//
// Prompting is built on github.com/AlecAivazis/survey/v2; batch-mode
// detection additionally consults github.com/mattn/go-isatty, treating a
// non-tty stdin as implicit batch mode even without an explicit flag.
package input

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/value"
)

// Session carries the ambient interactivity state (batch mode, stdin/stdout)
// that every UserInput form resolves against.
type Session struct {
	Batch  bool
	Stdin  io.Reader
	Stdout io.Writer
}

// NewSession builds a Session, auto-detecting batch mode from whether stdin
// is a terminal when batch is not explicitly requested.
func NewSession(batch bool) *Session {
	if !batch && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		batch = true
	}
	return &Session{Batch: batch, Stdin: os.Stdin, Stdout: os.Stdout}
}

func withStdio(s *Session) survey.AskOpt {
	return survey.WithStdio(asFile(s.Stdin), asFile(s.Stdout), os.Stderr)
}

// asFile best-effort casts an io.Reader/io.Writer to *os.File, since
// survey's WithStdio requires terminal file descriptors; when Stdin/Stdout
// have been swapped out for tests, survey isn't exercised (batch mode is
// always used in tests instead).
func asFile(rw interface{}) *os.File {
	if f, ok := rw.(*os.File); ok {
		return f
	}
	return nil
}

// BoolInput presents "Whether to <desc> [Y/n]" and accepts y/n forms,
// defaulting on empty input.
type BoolInput struct {
	Default     *bool
	Description string
}

func (b *BoolInput) Prompt() (value.Primitive, error) {
	sess := globalSession()
	if sess.Batch {
		if b.Default == nil {
			return value.Primitive{}, apperr.ErrDefaultNotSet
		}
		return value.BoolPrim(*b.Default), nil
	}

	desc := b.Description
	if desc == "" {
		desc = "proceed"
	}
	answer := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Whether to %s", desc),
		Default: b.Default != nil && *b.Default,
	}
	if err := survey.AskOne(prompt, &answer, withStdio(sess)); err != nil {
		return value.Primitive{}, apperr.Wrap(apperr.KindInput, err, "reading bool input")
	}
	return value.BoolPrim(answer), nil
}

// Parseable is satisfied by the primitive Go types Input[T] supports.
type Parseable interface {
	bool | int32 | float32 | string
}

// Input prompts for a single scalar of type T, parsing the trimmed line.
type Input[T Parseable] struct {
	Default     *T
	Description string
}

func (in *Input[T]) Prompt() (value.Primitive, error) {
	sess := globalSession()
	if sess.Batch {
		if in.Default == nil {
			return value.Primitive{}, apperr.ErrDefaultNotSet
		}
		return toPrimitive(*in.Default), nil
	}

	desc := in.Description
	if desc == "" {
		desc = "value"
	}
	message := fmt.Sprintf("Please input %s", desc)
	defStr := ""
	if in.Default != nil {
		defStr = fmt.Sprintf("%v", *in.Default)
		message = fmt.Sprintf("%s [default: %s]", message, defStr)
	}

	var raw string
	prompt := &survey.Input{Message: message, Default: defStr}
	if err := survey.AskOne(prompt, &raw, withStdio(sess)); err != nil {
		return value.Primitive{}, apperr.Wrap(apperr.KindInput, err, "reading input")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" && in.Default != nil {
		return toPrimitive(*in.Default), nil
	}
	parsed, err := parse[T](raw)
	if err != nil {
		return value.Primitive{}, apperr.Wrap(apperr.KindInput, err, "parsing input %q", raw)
	}
	return toPrimitive(parsed), nil
}

// SelectD presents the alternatives as an arrow-key selection list
// (survey.Select), with the 1-based DefaultIndex preselected; if
// AllowCustom, an extra entry prompts for a raw value parseable as T.
// Alternatives are not numbered and a typed index is not accepted.
type SelectD[T Parseable] struct {
	Alternatives []T
	DefaultIndex *uint64 // 1-based, non-zero
	Description  string
	AllowCustom  bool
}

func (s *SelectD[T]) Prompt() (value.Primitive, error) {
	if len(s.Alternatives) == 0 {
		return value.Primitive{}, apperr.New(apperr.KindConfig, "select input has no alternatives")
	}

	sess := globalSession()
	if sess.Batch {
		idx := 0
		if s.DefaultIndex != nil {
			idx = int(*s.DefaultIndex) - 1
		}
		if idx < 0 || idx >= len(s.Alternatives) {
			return value.Primitive{}, apperr.New(apperr.KindConfig, "select default index out of range")
		}
		return toPrimitive(s.Alternatives[idx]), nil
	}

	labels := make([]string, len(s.Alternatives))
	for i, alt := range s.Alternatives {
		labels[i] = fmt.Sprintf("%v", alt)
	}
	defaultLabel := labels[0]
	if s.DefaultIndex != nil {
		i := int(*s.DefaultIndex) - 1
		if i >= 0 && i < len(labels) {
			defaultLabel = labels[i]
		}
	}

	message := "Please select"
	if s.Description != "" {
		message = fmt.Sprintf("Please select %s", s.Description)
	}
	if s.AllowCustom {
		labels = append(labels, "<enter a custom value>")
	}

	var choice string
	prompt := &survey.Select{Message: message, Options: labels, Default: defaultLabel}
	if err := survey.AskOne(prompt, &choice, withStdio(sess)); err != nil {
		return value.Primitive{}, apperr.Wrap(apperr.KindInput, err, "reading select input")
	}

	if s.AllowCustom && choice == labels[len(labels)-1] {
		var raw string
		if err := survey.AskOne(&survey.Input{Message: "Custom value"}, &raw, withStdio(sess)); err != nil {
			return value.Primitive{}, apperr.Wrap(apperr.KindInput, err, "reading custom value")
		}
		parsed, err := parse[T](strings.TrimSpace(raw))
		if err != nil {
			return value.Primitive{}, apperr.Wrap(apperr.KindInput, err, "parsing custom value %q", raw)
		}
		return toPrimitive(parsed), nil
	}

	for i, label := range labels {
		if label == choice {
			return toPrimitive(s.Alternatives[i]), nil
		}
	}
	return value.Primitive{}, apperr.New(apperr.KindConfig, "selected value %q not found among alternatives", choice)
}

func toPrimitive[T Parseable](v T) value.Primitive {
	switch t := any(v).(type) {
	case bool:
		return value.BoolPrim(t)
	case int32:
		return value.IntPrim(t)
	case float32:
		return value.FloatPrim(t)
	case string:
		return value.StringPrim(t)
	default:
		return value.Primitive{}
	}
}

func parse[T Parseable](raw string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case bool:
		switch raw {
		case "y", "Y", "yes", "Yes", "YES":
			return any(true).(T), nil
		case "n", "N", "no", "No", "NO":
			return any(false).(T), nil
		default:
			return zero, fmt.Errorf("invalid bool %q", raw)
		}
	case int32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return zero, err
		}
		return any(int32(n)).(T), nil
	case float32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return zero, err
		}
		return any(float32(f)).(T), nil
	case string:
		return any(raw).(T), nil
	default:
		return zero, fmt.Errorf("unsupported type")
	}
}
