package patterns

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"docparse/constants"
)

// contactBlockRules capture free-form contact sections that follow common
// lead-ins.
var contactBlockRules = []*regexp.Regexp{
	regexp.MustCompile(`(?is)contact.*?information:?(.*?)(?:\n\n|\n[A-Z]|\z)`),
	regexp.MustCompile(`(?is)details:?(.*?)(?:\n\n|\n[A-Z]|\z)`),
	regexp.MustCompile(`(?is)for more.*?information:?(.*?)(?:\n\n|\n[A-Z]|\z)`),
}

var reSpaces = regexp.MustCompile(`\s+`)

const minContactBlockLen = 10

// ExtractContact runs the contact rule set and post-processes phone matches
// through libphonenumber. A number that parses and validates is replaced by
// its international formatting; anything else keeps the raw matched string,
// so a match is never dropped outright.
func ExtractContact(text, phoneRegion string) map[string][]string {
	if phoneRegion == "" {
		phoneRegion = "US"
	}

	results := Extract(text, constants.Contact)

	if raw, ok := results[FieldPhone]; ok {
		enhanced := make([]string, 0, len(raw))
		for _, candidate := range raw {
			enhanced = append(enhanced, normalizePhone(candidate, phoneRegion))
		}
		results[FieldPhone] = dedup(enhanced)
	}

	if blocks := contactBlocks(text); len(blocks) > 0 {
		results["contact_blocks"] = blocks
	}

	return results
}

func normalizePhone(candidate, region string) string {
	parsed, err := phonenumbers.Parse(candidate, region)
	if err != nil {
		slog.Debug("phone parse failed, keeping raw match", "candidate", candidate, "error", err)
		return candidate
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return candidate
	}
	return phonenumbers.Format(parsed, phonenumbers.INTERNATIONAL)
}

func contactBlocks(text string) []string {
	var blocks []string
	for _, rule := range contactBlockRules {
		for _, m := range rule.FindAllStringSubmatch(text, -1) {
			block := strings.TrimSpace(reSpaces.ReplaceAllString(m[1], " "))
			if len(block) > minContactBlockLen {
				blocks = append(blocks, block)
			}
		}
	}
	return dedup(blocks)
}
