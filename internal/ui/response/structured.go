package response

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dario.lol/hover/internal/ui"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StructuredData renders the scalar fields of a JSON object as a key/value
// box. Keys in skip and nested values are left out. It returns "" when
// nothing is left to show.
func StructuredData(title string, raw json.RawMessage, skip ...string) string {
	if len(raw) == 0 {
		return ""
	}

	var dataMap map[string]any
	if err := json.Unmarshal(raw, &dataMap); err != nil || len(dataMap) == 0 {
		return ""
	}

	skipped := make(map[string]bool, len(skip))
	for _, k := range skip {
		skipped[k] = true
	}

	keys := make([]string, 0, len(dataMap))
	for k := range dataMap {
		if !skipped[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	icb := NewItemContent()
	titleCaser := cases.Title(language.English)

	for _, k := range keys {
		var valueFormatted string
		switch val := dataMap[k].(type) {
		case nil, map[string]any, []any:
			continue
		case bool:
			if val {
				valueFormatted = ui.Success("Yes")
			} else {
				valueFormatted = ui.Error("No")
			}
		case string:
			if val == "" {
				continue
			}
			valueFormatted = ui.Text(val)
		case float64:
			valueFormatted = ui.Text(strconv.FormatFloat(val, 'f', -1, 64))
		default:
			valueFormatted = ui.Text(fmt.Sprintf("%v", val))
		}
		icb.Add(titleCaser.String(strings.ReplaceAll(k, "_", " "))+":", valueFormatted)
	}

	boxContent := icb.String()
	if boxContent == "" {
		return ""
	}
	return ui.Box(boxContent, title)
}
