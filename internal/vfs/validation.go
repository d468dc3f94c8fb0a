package vfs

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/michael-freling/file-manager/internal/xslices"
)

var paletteRule = validation.In(xslices.Map(Palette, func(color Color) interface{} {
	return color
})...).Error("must be one of blue, green, yellow, purple, pink, orange or red")

func isValidLeafName(value interface{}) error {
	name, _ := value.(string)
	if strings.Contains(name, separator) {
		return errors.New("must not contain a path separator")
	}
	if name == "." || name == ".." {
		return errors.New("must not be a relative path")
	}
	if strings.TrimSpace(name) != name {
		return errors.New("must not start or end with spaces")
	}
	return nil
}

func validateName(name string) error {
	if err := validation.Validate(name,
		validation.Required,
		validation.RuneLength(1, MaxNameLength),
		validation.By(isValidLeafName),
	); err != nil {
		return fmt.Errorf("%w: name %q %w", ErrInvalidArgument, name, err)
	}
	return nil
}

func validateSize(size int64) error {
	if err := validation.Validate(size, validation.Min(int64(0))); err != nil {
		return fmt.Errorf("%w: size %d %w", ErrInvalidArgument, size, err)
	}
	return nil
}

func validateColor(color Color) error {
	if err := validation.Validate(color, paletteRule); err != nil {
		return fmt.Errorf("%w: color %q %w", ErrInvalidArgument, color, err)
	}
	return nil
}

// ParseColor parses a color name. An empty string or "none" clears the color
func ParseColor(value string) (Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "none" {
		return ColorNone, nil
	}
	color := Color(value)
	if err := validateColor(color); err != nil {
		return ColorNone, err
	}
	return color, nil
}
