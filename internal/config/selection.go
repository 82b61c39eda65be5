package config

import (
	"fmt"
	"strings"

	"github.com/gilchrisn/ergm-estimnet/internal/changestat"
	"github.com/gilchrisn/ergm-estimnet/internal/errs"
	"github.com/gilchrisn/ergm-estimnet/internal/graph"
)

// structuralKinds are the bare (no qualifier) entries allowed in
// structParams.
var structuralKinds = map[string]changestat.Kind{
	"arc":             changestat.Arc,
	"reciprocity":     changestat.Reciprocity,
	"altkstarout":     changestat.AltKStarOut,
	"altkstarin":      changestat.AltKStarIn,
	"altktrianglet":   changestat.AltKTriangleT,
	"altktrianglec":   changestat.AltKTriangleC,
	"altktriangled":   changestat.AltKTriangleD,
	"altktriangleu":   changestat.AltKTriangleU,
	"alttwopathmixed": changestat.AltTwoPathMixed,
	"alttwopathin":    changestat.AltTwoPathIn,
	"alttwopathout":   changestat.AltTwoPathOut,
}

// attrKinds are the entries allowed in attrParams; each must be written
// as "name(attribute)".
var attrKinds = map[string]changestat.Kind{
	"sender":              changestat.Sender,
	"receiver":            changestat.Receiver,
	"matching":            changestat.Matching,
	"matchingreciprocity": changestat.MatchingReciprocity,
	"difference":          changestat.Difference,
}

// ParseSelection builds the change-statistic Selection named by the four
// SPEC_FULL.md §6 config keys. attrs is consulted to resolve which table
// (binary/categorical/continuous) each attrParams/attrInteractionParams
// name lives in.
func ParseSelection(structParams, attrParams, dyadicParams, attrInteractionParams []string, attrs *graph.Attributes) (changestat.Selection, error) {
	var sel changestat.Selection

	for _, entry := range structParams {
		name, arg, hasArg := splitQualifier(entry)
		if hasArg {
			return nil, fmt.Errorf("config: structParams entry %q takes no attribute qualifier: %w", entry, errs.ErrConfig)
		}
		kind, ok := structuralKinds[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("config: structParams: unknown statistic %q: %w", entry, errs.ErrConfig)
		}
		_ = arg
		sel = append(sel, changestat.Term{Kind: kind})
	}

	for _, entry := range attrParams {
		name, arg, hasArg := splitQualifier(entry)
		if !hasArg {
			return nil, fmt.Errorf("config: attrParams entry %q needs an (attribute) qualifier: %w", entry, errs.ErrConfig)
		}
		kind, ok := attrKinds[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("config: attrParams: unknown statistic %q: %w", entry, errs.ErrConfig)
		}
		table, err := tableOf(attrs, arg)
		if err != nil {
			return nil, err
		}
		sel = append(sel, changestat.Term{Kind: kind, AttrTable: table, AttrName: arg})
	}

	for _, entry := range dyadicParams {
		name, _, hasArg := splitQualifier(entry)
		covariate := name
		if hasArg {
			return nil, fmt.Errorf("config: dyadicParams entry %q takes no qualifier, it names the covariate directly: %w", entry, errs.ErrConfig)
		}
		sel = append(sel, changestat.Term{Kind: changestat.DyadicCovariate, CovariateName: covariate})
	}

	for _, entry := range attrInteractionParams {
		names := strings.Split(entry, ",")
		if len(names) != 2 {
			return nil, fmt.Errorf("config: attrInteractionParams entry %q must name exactly two attributes separated by a comma: %w", entry, errs.ErrConfig)
		}
		a, b := strings.TrimSpace(names[0]), strings.TrimSpace(names[1])
		tableA, err := tableOf(attrs, a)
		if err != nil {
			return nil, err
		}
		tableB, err := tableOf(attrs, b)
		if err != nil {
			return nil, err
		}
		sel = append(sel, changestat.Term{
			Kind:      changestat.AttrInteraction,
			PairTable: [2]changestat.AttrTable{tableA, tableB},
			PairName:  [2]string{a, b},
		})
	}

	return sel, nil
}

// splitQualifier splits "name(arg)" into ("name", "arg", true), or
// returns (entry, "", false) if entry carries no parenthesized qualifier.
func splitQualifier(entry string) (name, arg string, hasArg bool) {
	open := strings.IndexByte(entry, '(')
	if open < 0 || !strings.HasSuffix(entry, ")") {
		return strings.TrimSpace(entry), "", false
	}
	name = strings.TrimSpace(entry[:open])
	arg = strings.TrimSpace(entry[open+1 : len(entry)-1])
	return name, arg, true
}

// tableOf finds which attribute table carries name, preferring binary
// over categorical over continuous if (unusually) the same name was
// loaded into more than one table.
func tableOf(attrs *graph.Attributes, name string) (changestat.AttrTable, error) {
	if attrs != nil {
		if _, ok := attrs.Binary[name]; ok {
			return changestat.Binary, nil
		}
		if _, ok := attrs.Categorical[name]; ok {
			return changestat.Categorical, nil
		}
		if _, ok := attrs.Continuous[name]; ok {
			return changestat.Continuous, nil
		}
	}
	return 0, fmt.Errorf("config: attribute %q was not loaded from any attribute file: %w", name, errs.ErrConfig)
}
