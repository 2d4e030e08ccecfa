package apps_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okanin/summon/internal/apps"
)

const (
	decoderIdentifierConstant      = "decoder"
	codeIdentifierConstant         = "code"
	codiumIdentifierConstant       = "codium"
	helperIdentifierConstant       = "xcode-helper"
	decoderDisplayNameConstant     = "Decoder"
	codeDisplayNameConstant        = "Code"
	codiumDisplayNameConstant      = "Codium"
	helperDisplayNameConstant      = "XCode Helper"
	exactMatchCaseNameConstant     = "exact_over_prefix"
	uppercaseMatchCaseNameConstant = "case_insensitive_exact"
	prefixMatchCaseNameConstant    = "prefix_over_substring"
	substringMatchCaseNameConstant = "substring_fallback"
	unmatchedQueryCaseNameConstant = "no_match"
	blankQueryCaseNameConstant     = "blank_query"
	exactQueryConstant             = "code"
	uppercaseQueryConstant         = "CODE"
	prefixQueryConstant            = "cod"
	substringQueryConstant         = "helper"
	unmatchedQueryConstant         = "terminal"
	blankQueryConstant             = "   "
)

func TestMatchApplicationResolutionOrder(testInstance *testing.T) {
	listedApplications := []apps.Application{
		{Identifier: decoderIdentifierConstant, DisplayName: decoderDisplayNameConstant},
		{Identifier: codeIdentifierConstant, DisplayName: codeDisplayNameConstant},
		{Identifier: codiumIdentifierConstant, DisplayName: codiumDisplayNameConstant},
		{Identifier: helperIdentifierConstant, DisplayName: helperDisplayNameConstant},
	}

	testCases := []struct {
		name               string
		query              string
		expectedIdentifier string
		expectedMatched    bool
	}{
		{name: exactMatchCaseNameConstant, query: exactQueryConstant, expectedIdentifier: codeIdentifierConstant, expectedMatched: true},
		{name: uppercaseMatchCaseNameConstant, query: uppercaseQueryConstant, expectedIdentifier: codeIdentifierConstant, expectedMatched: true},
		{name: prefixMatchCaseNameConstant, query: prefixQueryConstant, expectedIdentifier: codeIdentifierConstant, expectedMatched: true},
		{name: substringMatchCaseNameConstant, query: substringQueryConstant, expectedIdentifier: helperIdentifierConstant, expectedMatched: true},
		{name: unmatchedQueryCaseNameConstant, query: unmatchedQueryConstant, expectedMatched: false},
		{name: blankQueryCaseNameConstant, query: blankQueryConstant, expectedMatched: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			matchedApplication, matched := apps.MatchApplication(listedApplications, testCase.query)

			require.Equal(subtestInstance, testCase.expectedMatched, matched)
			require.Equal(subtestInstance, testCase.expectedIdentifier, matchedApplication.Identifier)
		})
	}
}

func TestMatchApplicationPrefersEarliestListed(testInstance *testing.T) {
	listedApplications := []apps.Application{
		{Identifier: codiumIdentifierConstant, DisplayName: codiumDisplayNameConstant},
		{Identifier: codeIdentifierConstant, DisplayName: codeDisplayNameConstant},
	}

	matchedApplication, matched := apps.MatchApplication(listedApplications, prefixQueryConstant)

	require.True(testInstance, matched)
	require.Equal(testInstance, codiumIdentifierConstant, matchedApplication.Identifier)
}
