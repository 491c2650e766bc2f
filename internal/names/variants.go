// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

// nicknamesByFormal maps formal first names to their common nicknames.
// Loaded once at startup and never mutated, so it is safe to share across
// goroutines without locking.
var nicknamesByFormal = map[string][]string{
	"robert":      {"bob", "rob", "robbie", "bobby", "bert"},
	"william":     {"will", "bill", "billy", "willy", "liam"},
	"richard":     {"rick", "dick", "richie", "ricky"},
	"james":       {"jim", "jimmy", "jamie"},
	"john":        {"jack", "johnny", "jon"},
	"jonathan":    {"jon", "jonny", "nathan"},
	"joseph":      {"joe", "joey"},
	"michael":     {"mike", "mikey", "mick"},
	"christopher": {"chris", "topher", "kit"},
	"daniel":      {"dan", "danny"},
	"matthew":     {"matt", "matty"},
	"anthony":     {"tony", "ant"},
	"andrew":      {"andy", "drew"},
	"steven":      {"steve", "stevie"},
	"stephen":     {"steve", "stevie"},
	"edward":      {"ed", "eddie", "ted", "ned"},
	"thomas":      {"tom", "tommy"},
	"charles":     {"charlie", "chuck", "chas"},
	"david":       {"dave", "davey"},
	"nicholas":    {"nick", "nicky"},
	"alexander":   {"alex", "al", "sasha"},
	"benjamin":    {"ben", "benny"},
	"samuel":      {"sam", "sammy"},
	"timothy":     {"tim", "timmy"},
	"kenneth":     {"ken", "kenny"},
	"lawrence":    {"larry", "laurie"},
	"gregory":     {"greg"},
	"frederick":   {"fred", "freddie"},
	"raymond":     {"ray"},
	"peter":       {"pete"},
	"donald":      {"don", "donny"},
	"ronald":      {"ron", "ronny"},
	"elizabeth":   {"liz", "beth", "lizzy", "eliza", "betsy", "libby"},
	"margaret":    {"meg", "maggie", "peggy", "marge"},
	"katherine":   {"kate", "katie", "kathy", "kat"},
	"catherine":   {"cathy", "cat", "kate"},
	"kathleen":    {"kathy", "kate"},
	"jennifer":    {"jen", "jenny"},
	"jessica":     {"jess", "jessie"},
	"patricia":    {"pat", "patty", "tricia", "trish"},
	"susan":       {"sue", "susie", "suzy"},
	"deborah":     {"deb", "debbie"},
	"barbara":     {"barb", "barbie"},
	"rebecca":     {"becky", "becca"},
	"victoria":    {"vicky", "tori"},
	"alexandra":   {"alex", "sandra", "lexi"},
	"abigail":     {"abby", "gail"},
	"samantha":    {"sam", "sammy"},
	"christina":   {"chris", "tina", "christy"},
	"stephanie":   {"steph", "stephie"},
	"danielle":    {"dani"},
	"michelle":    {"shelly", "mich"},
	"amanda":      {"mandy", "amy"},
	"melissa":     {"mel", "missy"},
	"nancy":       {"nan"},
	"dorothy":     {"dot", "dottie"},
	"sandra":      {"sandy"},
	"cynthia":     {"cindy"},
	"judith":      {"judy"},
	"virginia":    {"ginny", "ginger"},
}

// formalsByNickname is the reverse index, computed once at startup.
var formalsByNickname = buildReverseIndex()

func buildReverseIndex() map[string][]string {
	rev := make(map[string][]string)
	for formal, nicks := range nicknamesByFormal {
		for _, n := range nicks {
			rev[n] = append(rev[n], formal)
		}
	}
	return rev
}

// VariantsOf returns the closure of known variants of a lowercase first
// name, always including the input itself. A formal name contributes its
// nicknames; a nickname contributes every formal name it maps to plus that
// formal name's other nicknames, so "bob" and "rob" both resolve through
// "robert" to each other.
func VariantsOf(first string) map[string]bool {
	variants := map[string]bool{first: true}

	for _, n := range nicknamesByFormal[first] {
		variants[n] = true
	}

	for _, formal := range formalsByNickname[first] {
		variants[formal] = true
		for _, sibling := range nicknamesByFormal[formal] {
			variants[sibling] = true
		}
	}

	return variants
}

// AreVariants reports whether two lowercase first names are the same or
// known variants of each other. Symmetric by construction of the closure.
func AreVariants(a, b string) bool {
	if a == b {
		return true
	}
	return VariantsOf(a)[b]
}
