// Package config loads lattice attribute values from JSON or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical lattice defaults file.
const DefaultConfigPath = "config/lattice.defaults.json"

// LatticeConfig holds the attribute values of a lattice. Every field is
// optional; the Get* accessors supply defaults for unset fields, so partial
// files are safe.
type LatticeConfig struct {
	// Lattice shape
	Size    *[3]int     `json:"size,omitempty" yaml:"size,omitempty"` // cells along x, y, z
	InvertZ *bool       `json:"invert_z,omitempty" yaml:"invert_z,omitempty"`
	Offset  *[3]float64 `json:"offset,omitempty" yaml:"offset,omitempty"`

	// Cell layout. Enabling a limit requires its vector; Validate rejects
	// *_enabled: true on its own.
	CellSize           *[3]float64 `json:"cell_size,omitempty" yaml:"cell_size,omitempty"`
	Spacing            *[3]float64 `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	MaxCellSize        *[3]float64 `json:"max_cell_size,omitempty" yaml:"max_cell_size,omitempty"`
	MaxCellSizeEnabled *bool       `json:"max_cell_size_enabled,omitempty" yaml:"max_cell_size_enabled,omitempty"`
	MaxSpacing         *[3]float64 `json:"max_spacing,omitempty" yaml:"max_spacing,omitempty"`
	MaxSpacingEnabled  *bool       `json:"max_spacing_enabled,omitempty" yaml:"max_spacing_enabled,omitempty"`

	// Scaling
	Scale        *[3]float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	AutoScale    *bool       `json:"auto_scale,omitempty" yaml:"auto_scale,omitempty"`
	MaxWorldSize *[3]float64 `json:"max_world_size,omitempty" yaml:"max_world_size,omitempty"`

	// Manual origin, used when no anchor is attached
	Origin *OriginConfig `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// OriginConfig holds the manual origin values.
type OriginConfig struct {
	Position *[3]float64 `json:"position,omitempty" yaml:"position,omitempty"`
	Rotation *[4]float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"` // quaternion w, x, y, z
	Scale    *[3]float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

func ptrBool(v bool) *bool             { return &v }
func ptrInt3(v [3]int) *[3]int         { return &v }
func ptrVec3(v [3]float64) *[3]float64 { return &v }
func ptrQuat(v [4]float64) *[4]float64 { return &v }

// EmptyLatticeConfig returns a LatticeConfig with all fields set to nil.
func EmptyLatticeConfig() *LatticeConfig {
	return &LatticeConfig{}
}

// DefaultLatticeConfig returns a LatticeConfig with every field set to its
// default: a single unit cell at the origin, no limits, no auto-scale.
func DefaultLatticeConfig() *LatticeConfig {
	return &LatticeConfig{
		Size:               ptrInt3([3]int{1, 1, 1}),
		InvertZ:            ptrBool(false),
		Offset:             ptrVec3([3]float64{}),
		CellSize:           ptrVec3([3]float64{1, 1, 1}),
		Spacing:            ptrVec3([3]float64{}),
		MaxCellSize:        ptrVec3([3]float64{}),
		MaxCellSizeEnabled: ptrBool(false),
		MaxSpacing:         ptrVec3([3]float64{}),
		MaxSpacingEnabled:  ptrBool(false),
		Scale:              ptrVec3([3]float64{1, 1, 1}),
		AutoScale:          ptrBool(false),
		MaxWorldSize:       ptrVec3([3]float64{}),
		Origin: &OriginConfig{
			Position: ptrVec3([3]float64{}),
			Rotation: ptrQuat([4]float64{1, 0, 0, 0}),
			Scale:    ptrVec3([3]float64{1, 1, 1}),
		},
	}
}

// LoadLatticeConfig loads a LatticeConfig from a .json, .yaml or .yml file.
// The file must be under 1MB and pass Validate.
func LoadLatticeConfig(path string) (*LatticeConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyLatticeConfig()
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents up to the repository root.
// Panics if the file cannot be loaded, intended for test setup and tools.
func MustLoadDefaultConfig() *LatticeConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from internal/lattice/overlay/ and cmd/tools/lattice-dump/
	}
	for _, path := range candidates {
		if cfg, err := LoadLatticeConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run from repository root")
}

// Validate checks that the configured values describe a usable lattice.
func (c *LatticeConfig) Validate() error {
	if c.Size != nil {
		for axis, n := range c.Size {
			if n < 0 {
				return fmt.Errorf("size[%d] must be non-negative, got %d", axis, n)
			}
		}
	}
	if err := validateNonNegative("cell_size", c.CellSize); err != nil {
		return err
	}
	if err := validateNonNegative("max_cell_size", c.MaxCellSize); err != nil {
		return err
	}
	if err := validateNonNegative("max_spacing", c.MaxSpacing); err != nil {
		return err
	}
	if err := validateNonNegative("max_world_size", c.MaxWorldSize); err != nil {
		return err
	}
	if err := validateLimit("max_cell_size", c.MaxCellSize, c.MaxCellSizeEnabled); err != nil {
		return err
	}
	if err := validateLimit("max_spacing", c.MaxSpacing, c.MaxSpacingEnabled); err != nil {
		return err
	}
	for name, v := range map[string]*[3]float64{"offset": c.Offset, "spacing": c.Spacing, "scale": c.Scale} {
		if err := validateFinite(name, v); err != nil {
			return err
		}
	}
	if c.Origin != nil {
		if err := validateFinite("origin.position", c.Origin.Position); err != nil {
			return err
		}
		if err := validateFinite("origin.scale", c.Origin.Scale); err != nil {
			return err
		}
		if q := c.Origin.Rotation; q != nil {
			norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
			if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
				return fmt.Errorf("origin.rotation must be a non-zero finite quaternion, got %v", *q)
			}
		}
	}
	return nil
}

// validateLimit rejects an enabled limit without a value.
func validateLimit(name string, limit *[3]float64, enabled *bool) error {
	if enabled != nil && *enabled && limit == nil {
		return fmt.Errorf("%s_enabled is true but %s is not set", name, name)
	}
	return nil
}

func validateNonNegative(name string, v *[3]float64) error {
	if err := validateFinite(name, v); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	for axis, x := range v {
		if x < 0 {
			return fmt.Errorf("%s[%d] must be non-negative, got %f", name, axis, x)
		}
	}
	return nil
}

func validateFinite(name string, v *[3]float64) error {
	if v == nil {
		return nil
	}
	for axis, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d] must be finite, got %f", name, axis, x)
		}
	}
	return nil
}

// GetSize returns the cell count per axis or the default (1, 1, 1).
func (c *LatticeConfig) GetSize() [3]int {
	if c.Size == nil {
		return [3]int{1, 1, 1}
	}
	return *c.Size
}

// GetInvertZ returns the invert_z value or the default (false).
func (c *LatticeConfig) GetInvertZ() bool {
	if c.InvertZ == nil {
		return false
	}
	return *c.InvertZ
}

// GetOffset returns the manual local offset or the default (zero).
func (c *LatticeConfig) GetOffset() [3]float64 {
	return vec3OrDefault(c.Offset, [3]float64{})
}

// GetCellSize returns the base cell size or the default (1, 1, 1).
func (c *LatticeConfig) GetCellSize() [3]float64 {
	return vec3OrDefault(c.CellSize, [3]float64{1, 1, 1})
}

// GetSpacing returns the base spacing or the default (zero).
func (c *LatticeConfig) GetSpacing() [3]float64 {
	return vec3OrDefault(c.Spacing, [3]float64{})
}

// GetMaxCellSize returns the cell size limit and whether it is enabled.
// The limit is disabled unless both fields are set and enabled is true.
func (c *LatticeConfig) GetMaxCellSize() ([3]float64, bool) {
	if c.MaxCellSize == nil || c.MaxCellSizeEnabled == nil {
		return vec3OrDefault(c.MaxCellSize, [3]float64{}), false
	}
	return *c.MaxCellSize, *c.MaxCellSizeEnabled
}

// GetMaxSpacing returns the spacing limit and whether it is enabled.
func (c *LatticeConfig) GetMaxSpacing() ([3]float64, bool) {
	if c.MaxSpacing == nil || c.MaxSpacingEnabled == nil {
		return vec3OrDefault(c.MaxSpacing, [3]float64{}), false
	}
	return *c.MaxSpacing, *c.MaxSpacingEnabled
}

// GetScale returns the grid scale or the default (1, 1, 1).
func (c *LatticeConfig) GetScale() [3]float64 {
	return vec3OrDefault(c.Scale, [3]float64{1, 1, 1})
}

// GetAutoScale returns the auto_scale value or the default (false).
func (c *LatticeConfig) GetAutoScale() bool {
	if c.AutoScale == nil {
		return false
	}
	return *c.AutoScale
}

// GetMaxWorldSize returns the auto-scale world bound or the default (zero).
func (c *LatticeConfig) GetMaxWorldSize() [3]float64 {
	return vec3OrDefault(c.MaxWorldSize, [3]float64{})
}

// GetOriginPosition returns the manual origin position or the default (zero).
func (c *LatticeConfig) GetOriginPosition() [3]float64 {
	if c.Origin == nil {
		return [3]float64{}
	}
	return vec3OrDefault(c.Origin.Position, [3]float64{})
}

// GetOriginRotation returns the manual origin rotation as a unit quaternion
// (w, x, y, z), or identity. Non-unit quaternions are normalised.
func (c *LatticeConfig) GetOriginRotation() [4]float64 {
	if c.Origin == nil || c.Origin.Rotation == nil {
		return [4]float64{1, 0, 0, 0}
	}
	q := *c.Origin.Rotation
	norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return [4]float64{1, 0, 0, 0}
	}
	return [4]float64{q[0] / norm, q[1] / norm, q[2] / norm, q[3] / norm}
}

// GetOriginScale returns the manual origin scale or the default (1, 1, 1).
func (c *LatticeConfig) GetOriginScale() [3]float64 {
	if c.Origin == nil {
		return [3]float64{1, 1, 1}
	}
	return vec3OrDefault(c.Origin.Scale, [3]float64{1, 1, 1})
}

func vec3OrDefault(v *[3]float64, def [3]float64) [3]float64 {
	if v == nil {
		return def
	}
	return *v
}
