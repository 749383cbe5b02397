package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/internal/types"
)

var fuzzyMatchFields = map[string]struct{}{
	"query": {}, "candidates": {}, "winwidth": {}, "enable_icon": {},
	"line_splitter": {}, "algo": {}, "limit": {}, "dedup": {},
}

// FuzzyMatchParams are the arguments of the fuzzy_match tool. Optional
// fields left out fall back to the server configuration.
type FuzzyMatchParams struct {
	Query        string   `json:"query"`
	Candidates   []string `json:"candidates"`
	WinWidth     *int     `json:"winwidth,omitempty"`
	EnableIcon   *bool    `json:"enable_icon,omitempty"`
	LineSplitter string   `json:"line_splitter,omitempty"`
	Algo         string   `json:"algo,omitempty"`
	Limit        *int     `json:"limit,omitempty"`
	Dedup        *bool    `json:"dedup,omitempty"`

	// Warnings lists arguments that were not recognised
	Warnings []UnknownField `json:"-"`

	hasQuery bool
}

// UnmarshalJSON decodes the known arguments and records the rest as warnings
func (p *FuzzyMatchParams) UnmarshalJSON(data []byte) error {
	type alias FuzzyMatchParams

	raw, warnings, err := collectUnknownFields(data, fuzzyMatchFields)
	if err != nil {
		return err
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = FuzzyMatchParams(a)
	p.Warnings = warnings
	_, p.hasQuery = raw["query"]
	return nil
}

// parseFuzzyMatchParams decodes tool arguments. Missing arguments decode as
// an empty object so the required-field checks report them.
func parseFuzzyMatchParams(args json.RawMessage) (FuzzyMatchParams, error) {
	var params FuzzyMatchParams
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return FuzzyMatchParams{}, fzerrors.NewInputError("arguments", string(args), err)
	}
	if !params.hasQuery {
		return FuzzyMatchParams{}, fzerrors.NewInputError("query", "", errors.New("is required"))
	}
	if params.Candidates == nil {
		return FuzzyMatchParams{}, fzerrors.NewInputError("candidates", "", errors.New("is required"))
	}
	return params, nil
}

// options overlays the explicit arguments on defaults
func (p FuzzyMatchParams) options(defaults types.Options) (types.Options, error) {
	opts := defaults

	if p.WinWidth != nil {
		if *p.WinWidth < 0 {
			return types.Options{}, fzerrors.NewInputError("winwidth", fmt.Sprint(*p.WinWidth), errors.New("must not be negative"))
		}
		opts.Width = *p.WinWidth
	}
	if p.EnableIcon != nil {
		opts.EnableIcon = *p.EnableIcon
	}
	if p.LineSplitter != "" {
		splitter, err := types.ParseLineSplitter(p.LineSplitter)
		if err != nil {
			return types.Options{}, err
		}
		opts.Splitter = splitter
	}
	if p.Algo != "" {
		algo, err := types.ParseAlgo(p.Algo)
		if err != nil {
			return types.Options{}, err
		}
		opts.Algo = algo
	}
	return opts, nil
}

func (p FuzzyMatchParams) limit(fallback int) (int, error) {
	if p.Limit == nil {
		return fallback, nil
	}
	if *p.Limit < 0 {
		return 0, fzerrors.NewInputError("limit", fmt.Sprint(*p.Limit), errors.New("must not be negative"))
	}
	return *p.Limit, nil
}

func (p FuzzyMatchParams) dedup(fallback bool) bool {
	if p.Dedup == nil {
		return fallback
	}
	return *p.Dedup
}
