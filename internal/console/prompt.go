package console

import (
	"errors"
	"io"
	"strings"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

// readLine prints label and returns one line without its terminator. A final
// unterminated line is returned as is; io.EOF only surfaces on empty input.
func (c *Console) readLine(label string) (string, error) {
	if label != "" {
		c.printf("%s", label)
	}
	return c.readRaw()
}

func (c *Console) readRaw() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask re-prompts until parse accepts the input. Validation failures are shown;
// other errors abort.
func ask[T any](c *Console, label string, parse func(string) (T, error)) (T, error) {
	return askWith(c, label, c.readRaw, parse)
}

func askWith[T any](c *Console, label string, read func() (string, error), parse func(string) (T, error)) (T, error) {
	for {
		c.printf("%s", label)
		line, err := read()
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		if !apperrors.IsValidation(err) {
			var zero T
			return zero, err
		}
		c.report(err)
	}
}

// askOptional treats blank input as "keep current" and returns nil for it.
func askOptional[T any](c *Console, label string, parse func(string) (T, error)) (*T, error) {
	for {
		line, err := c.readLine(label)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			return nil, nil
		}

		v, err := parse(line)
		if err == nil {
			return &v, nil
		}
		if !apperrors.IsValidation(err) {
			return nil, err
		}
		c.report(err)
	}
}

func (c *Console) askID(label, field string) (int64, error) {
	return ask(c, label, func(s string) (int64, error) {
		return c.validator.ID(s, field)
	})
}

func (c *Console) askText(label, field string) (string, error) {
	return ask(c, label, func(s string) (string, error) {
		return c.validator.RequiredText(s, field)
	})
}

func (c *Console) askAlpha(label, field string) (string, error) {
	return ask(c, label, func(s string) (string, error) {
		return c.validator.Alpha(s, field)
	})
}
