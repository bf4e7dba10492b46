package collector

import "strings"

// Field is a canonical bar column.
type Field string

const (
	FieldTimestamp Field = "timestamp"
	FieldTime      Field = "time"
	FieldOpen      Field = "open"
	FieldHigh      Field = "high"
	FieldLow       Field = "low"
	FieldClose     Field = "close"
	FieldPOC       Field = "poc"
	FieldVAL       Field = "val"
	FieldVAH       Field = "vah"
	FieldVWAP      Field = "vwap"
	FieldVolume    Field = "volume"
	FieldTrades    Field = "trades"
)

// Synonyms maps each canonical field to the vendor header names accepted for
// it, in priority order. The canonical name itself is always accepted.
var Synonyms = []struct {
	Field    Field
	Required bool
	Names    []string
}{
	{FieldTimestamp, true, []string{"Date", "Timestamp", "Datetime", "Date Time", "Bar Date"}},
	{FieldTime, false, []string{"Time", "Bar Time"}},
	{FieldOpen, false, []string{"Open"}},
	{FieldHigh, false, []string{"High"}},
	{FieldLow, false, []string{"Low"}},
	{FieldClose, true, []string{"Last", "Last Price", "Close"}},
	{FieldPOC, true, []string{"Point of Control", "POC"}},
	{FieldVAH, true, []string{"Value Area High Value", "Value Area High", "VAH"}},
	{FieldVAL, true, []string{"Value Area Low Value", "Value Area Low", "VAL"}},
	{FieldVWAP, false, []string{"Volume Weighted Average Price", "VWAP"}},
	{FieldVolume, false, []string{"Volume", "Vol"}},
	{FieldTrades, false, []string{"# of Trades", "Trades", "Number of Trades", "Trade Count"}},
}

// headerKey folds a header cell for matching: quotes and surrounding space
// removed, inner whitespace collapsed, lower-cased.
func headerKey(s string) string {
	s = strings.NewReplacer(`"`, "", "'", "", "\ufeff", "").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// resolveColumns returns the column index per field found in header.
func resolveColumns(header []string) map[Field]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		k := headerKey(h)
		if _, dup := index[k]; !dup {
			index[k] = i
		}
	}
	cols := make(map[Field]int)
	for _, syn := range Synonyms {
		names := append([]string{string(syn.Field)}, syn.Names...)
		for _, n := range names {
			if i, ok := index[headerKey(n)]; ok {
				cols[syn.Field] = i
				break
			}
		}
	}
	return cols
}
