package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestBooleanFlagValueLiterals(t *testing.T) {
	testCases := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{input: "yes", expected: true},
		{input: "ON", expected: true},
		{input: " 1 ", expected: true},
		{input: "", expected: true},
		{input: "off", expected: false},
		{input: "No", expected: false},
		{input: "0", expected: false},
		{input: "maybe", expectError: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			target := !testCase.expected
			value := &booleanFlagValue{target: &target, flagKey: statFlagName}
			err := value.Set(testCase.input)
			if testCase.expectError {
				if err == nil {
					t.Fatalf("expected error for %q", testCase.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("set %q: %v", testCase.input, err)
			}
			if target != testCase.expected {
				t.Fatalf("set %q produced %v", testCase.input, target)
			}
		})
	}
}

func TestFallbackIntFlagValue(t *testing.T) {
	testCases := []struct {
		name           string
		inputs         []string
		expectedValue  int
		expectExplicit bool
		expectReports  []string
	}{
		{name: "untouched", expectedValue: 10},
		{name: "valid", inputs: []string{"3"}, expectedValue: 3, expectExplicit: true},
		{name: "zero", inputs: []string{"0"}, expectedValue: 0, expectExplicit: true},
		{name: "malformed", inputs: []string{"abc"}, expectedValue: 10, expectReports: []string{"abc"}},
		{name: "negative", inputs: []string{"-1"}, expectedValue: 10, expectReports: []string{"-1"}},
		{name: "malformed_after_valid", inputs: []string{"4", "x"}, expectedValue: 4, expectExplicit: true, expectReports: []string{"x"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var reports []string
			var target int
			flagSet := pflag.NewFlagSet(testCase.name, pflag.ContinueOnError)
			flagValue := registerFallbackIntFlag(flagSet, &target, levelFlagName, levelFlagShorthand, 10, levelFlagDescription, func(flagKey string, input string) {
				if flagKey != levelFlagName {
					t.Errorf("unexpected flag key %q", flagKey)
				}
				reports = append(reports, input)
			})
			for _, input := range testCase.inputs {
				if err := flagSet.Set(levelFlagName, input); err != nil {
					t.Fatalf("set must not fail, got %v", err)
				}
			}
			value, explicit := flagValue.Value()
			if value != testCase.expectedValue || explicit != testCase.expectExplicit {
				t.Fatalf("got (%d, %v), want (%d, %v)", value, explicit, testCase.expectedValue, testCase.expectExplicit)
			}
			if !reflect.DeepEqual(reports, testCase.expectReports) {
				t.Fatalf("reports = %v, want %v", reports, testCase.expectReports)
			}
		})
	}
}

func TestNormalizeBooleanFlagArguments(t *testing.T) {
	command := &cobra.Command{Use: "probe"}
	var stat bool
	var path string
	registerBooleanFlag(command.Flags(), &stat, statFlagName, false, statFlagDescription)
	command.Flags().StringVar(&path, pathFlagName, "", pathFlagDescription)

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{name: "literal_joined", arguments: []string{"--stat", "yes", "dir"}, expected: []string{"--stat=yes", "dir"}},
		{name: "path_kept", arguments: []string{"--stat", "dir"}, expected: []string{"--stat", "dir"}},
		{name: "non_boolean_flag", arguments: []string{"--path", "on"}, expected: []string{"--path", "on"}},
		{name: "terminator", arguments: []string{"--", "--stat", "no"}, expected: []string{"--", "--stat", "no"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			normalized := normalizeBooleanFlagArguments(command, testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				t.Fatalf("got %v, want %v", normalized, testCase.expected)
			}
		})
	}
}
