package kagen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/kagen/generator"
)

// ParseOptionString expands "key=value;key=value;flag" options on top of
// a base configuration. Upper-case N and M give powers of two (N=14
// means 2^14 vertices); flags without a value default to true.
func ParseOptionString(options string, base generator.Config) (generator.Config, error) {
	cfg := base
	for _, field := range strings.Split(options, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		key, value, hasValue := strings.Cut(field, "=")

		if flag, ok := flagTarget(&cfg, key); ok {
			*flag = true
			if hasValue {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return cfg, generator.ConfigErrorf("option %q: %v", field, err)
				}
				*flag = b
			}
			continue
		}
		if !hasValue {
			return cfg, generator.ConfigErrorf("option %q is not a flag", field)
		}
		if key == "type" {
			t, ok := generator.TypeFromString(value)
			if !ok {
				return cfg, fmt.Errorf("%w: %q", ErrUnknownType, value)
			}
			cfg.Generator = t
			continue
		}
		if err := numericOption(&cfg, key, value); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func flagTarget(cfg *generator.Config, key string) (*bool, bool) {
	switch key {
	case "periodic":
		return &cfg.Periodic, true
	case "coordinates":
		return &cfg.Coordinates, true
	case "directed":
		return &cfg.Directed, true
	case "self_loops":
		return &cfg.SelfLoops, true
	case "hp_floats":
		return &cfg.HPFloats, true
	}

	return nil, false
}

func numericOption(cfg *generator.Config, key, value string) error {
	parseInt := func() (int64, error) { return strconv.ParseInt(value, 10, 64) }
	parseFloat := func() (float64, error) { return strconv.ParseFloat(value, 64) }

	var err error
	switch key {
	case "n":
		cfg.N, err = parseInt()
	case "N":
		var exp int64
		if exp, err = parseInt(); err == nil {
			cfg.N = 1 << exp
		}
	case "m":
		cfg.M, err = parseInt()
	case "M":
		var exp int64
		if exp, err = parseInt(); err == nil {
			cfg.M = 1 << exp
		}
	case "k":
		cfg.K, err = parseInt()
	case "seed":
		var s int64
		if s, err = parseInt(); err == nil {
			cfg.Seed = uint64(s)
		}
	case "prob":
		cfg.P, err = parseFloat()
	case "radius":
		cfg.R, err = parseFloat()
	case "gamma":
		cfg.PLExp, err = parseFloat()
	case "avg_degree":
		cfg.AvgDegree, err = parseFloat()
	case "min_degree":
		cfg.MinDegree, err = parseInt()
	case "grid_x":
		cfg.GridX, err = parseInt()
	case "grid_y":
		cfg.GridY, err = parseInt()
	case "grid_z":
		cfg.GridZ, err = parseInt()
	case "rmat_a":
		cfg.RMatA, err = parseFloat()
	case "rmat_b":
		cfg.RMatB, err = parseFloat()
	case "rmat_c":
		cfg.RMatC, err = parseFloat()
	default:
		return generator.ConfigErrorf("unknown option key %q", key)
	}
	if err != nil {
		return generator.ConfigErrorf("option %s=%s: %v", key, value, err)
	}

	return nil
}
