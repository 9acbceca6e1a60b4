// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag binds a cli flag to a viper config key
type Flag struct {
	// key is the viper config key, e.g. "scan.subnet"
	key string
	// name is the cli flag name, e.g. "subnet"
	name string
}

// NewFlag returns a flag named name bound to the config key
func NewFlag(key, name string) *Flag {
	return &Flag{key: key, name: name}
}

type StringFlag struct{ f *Flag }

type BoolFlag struct{ f *Flag }

type IntFlag struct{ f *Flag }

type FloatFlag struct{ f *Flag }

type DurationFlag struct{ f *Flag }

func (f *Flag) String() *StringFlag { return &StringFlag{f: f} }

func (f *Flag) Bool() *BoolFlag { return &BoolFlag{f: f} }

func (f *Flag) Int() *IntFlag { return &IntFlag{f: f} }

func (f *Flag) Float() *FloatFlag { return &FloatFlag{f: f} }

func (f *Flag) Duration() *DurationFlag { return &DurationFlag{f: f} }

// Bind registers the flag on fs and binds it to the config key
func (s *StringFlag) Bind(fs *pflag.FlagSet, value, usage string) {
	fs.String(s.f.name, value, usage)
	s.f.bind(fs)
}

// Bind registers the flag on fs and binds it to the config key
func (b *BoolFlag) Bind(fs *pflag.FlagSet, value bool, usage string) {
	fs.Bool(b.f.name, value, usage)
	b.f.bind(fs)
}

// Bind registers the flag on fs and binds it to the config key
func (i *IntFlag) Bind(fs *pflag.FlagSet, value int, usage string) {
	fs.Int(i.f.name, value, usage)
	i.f.bind(fs)
}

// Bind registers the flag on fs and binds it to the config key
func (f *FloatFlag) Bind(fs *pflag.FlagSet, value float64, usage string) {
	fs.Float64(f.f.name, value, usage)
	f.f.bind(fs)
}

// Bind registers the flag on fs and binds it to the config key
func (d *DurationFlag) Bind(fs *pflag.FlagSet, value time.Duration, usage string) {
	fs.Duration(d.f.name, value, usage)
	d.f.bind(fs)
}

func (f *Flag) bind(fs *pflag.FlagSet) {
	cobra.CheckErr(viper.BindPFlag(f.key, fs.Lookup(f.name)))
}
