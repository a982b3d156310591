package attack

import "sort"

// Mapping tracks, for every cipherletter of a charset, the clear letters
// it could stand for. A cipherletter without an entry has no evidence
// yet; that is different from an entry emptied by contradictory
// evidence, which marks a dead end that stays dead.
type Mapping struct {
	letters []rune
	members map[rune]bool
	table   map[rune]map[rune]bool
}

// NewMapping returns an evidence-free mapping over charset.
func NewMapping(charset string) *Mapping {
	m := &Mapping{
		members: make(map[rune]bool, len(charset)),
		table:   make(map[rune]map[rune]bool),
	}
	for _, r := range charset {
		if m.members[r] {
			continue
		}
		m.members[r] = true
		m.letters = append(m.letters, r)
	}
	return m
}

// WordMapping builds the mapping a single ciphered word contributes:
// every candidate clear word adds its letters as candidates for the
// cipherletters at the same positions. Candidates are expected to share
// the ciphered word's pattern, and with it its length.
func WordMapping(ciphered string, candidates []string, charset string) *Mapping {
	m := NewMapping(charset)
	cipheredRunes := []rune(ciphered)
	for _, candidate := range candidates {
		candidateRunes := []rune(candidate)
		if len(candidateRunes) != len(cipheredRunes) {
			continue
		}
		for i, cipherletter := range cipheredRunes {
			m.Add(cipherletter, candidateRunes[i])
		}
	}
	return m
}

// Add records clear as a candidate for cipherletter. Letters outside the
// charset are ignored.
func (m *Mapping) Add(cipherletter, clear rune) {
	if !m.inCharset(cipherletter) || !m.inCharset(clear) {
		return
	}
	set := m.table[cipherletter]
	if set == nil {
		set = make(map[rune]bool)
		m.table[cipherletter] = set
	}
	set[clear] = true
}

// Candidates returns the sorted candidate letters of cipherletter, nil
// when there is no evidence for it.
func (m *Mapping) Candidates(cipherletter rune) []rune {
	set, ok := m.table[cipherletter]
	if !ok {
		return nil
	}
	candidates := make([]rune, 0, len(set))
	for r := range set {
		candidates = append(candidates, r)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates
}

// Reduce folds the evidence of another mapping in, cipherletter by
// cipherletter: no running evidence adopts the incoming set, an open set
// intersects with it, and locked singletons or dead ends never change.
// Empty incoming sets carry no evidence and are skipped.
func (m *Mapping) Reduce(other *Mapping) {
	for _, cipherletter := range m.letters {
		incoming := other.table[cipherletter]
		if len(incoming) == 0 {
			continue
		}
		running, ok := m.table[cipherletter]
		if !ok {
			m.table[cipherletter] = copySet(incoming)
			continue
		}
		if len(running) > 1 {
			m.table[cipherletter] = intersectSets(running, incoming)
		}
	}
}

// CleanRedundancies removes every locked letter (the value of a
// singleton set) from all open multi-candidate sets, in one pass.
func (m *Mapping) CleanRedundancies() {
	locked := make(map[rune]bool)
	for _, set := range m.table {
		if len(set) == 1 {
			locked[soleMember(set)] = true
		}
	}
	for _, set := range m.table {
		if len(set) <= 1 {
			continue
		}
		for clear := range locked {
			delete(set, clear)
		}
	}
}

// PossibleMappings expands the mapping into every concrete combination:
// the Cartesian product over the constrained cipherletters, walked with
// an iterative odometer in charset order with candidates sorted, so the
// output order is deterministic. Cipherletters without evidence stay
// unconstrained in every branch.
func (m *Mapping) PossibleMappings() []*Mapping {
	type constrained struct {
		cipherletter rune
		candidates   []rune
	}
	var items []constrained
	for _, cipherletter := range m.letters {
		set, ok := m.table[cipherletter]
		if !ok || len(set) == 0 {
			continue
		}
		items = append(items, constrained{cipherletter: cipherletter, candidates: m.Candidates(cipherletter)})
	}
	if len(items) == 0 {
		return []*Mapping{m.clone()}
	}
	var mappings []*Mapping
	counters := make([]int, len(items))
	for {
		branch := m.clone()
		for i, item := range items {
			branch.table[item.cipherletter] = map[rune]bool{item.candidates[counters[i]]: true}
		}
		mappings = append(mappings, branch)
		i := len(counters) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(items[i].candidates) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return mappings
}

// KeyString renders the mapping as a substitution key: for every clear
// charset letter it emits the first cipherletter locked to it, falling
// back to the clear letter itself when none is. Conflicting mappings can
// produce keys with repeated letters; those fail key validation later
// and score zero.
func (m *Mapping) KeyString() string {
	key := make([]rune, 0, len(m.letters))
	for _, clear := range m.letters {
		emitted := false
		for _, cipherletter := range m.letters {
			set := m.table[cipherletter]
			if len(set) == 1 && soleMember(set) == clear {
				key = append(key, cipherletter)
				emitted = true
				break
			}
		}
		if !emitted {
			key = append(key, clear)
		}
	}
	return string(key)
}

func (m *Mapping) inCharset(r rune) bool {
	return m.members[r]
}

func (m *Mapping) clone() *Mapping {
	clone := &Mapping{
		letters: m.letters,
		members: m.members,
		table:   make(map[rune]map[rune]bool, len(m.table)),
	}
	for cipherletter, set := range m.table {
		clone.table[cipherletter] = copySet(set)
	}
	return clone
}

func copySet(set map[rune]bool) map[rune]bool {
	copied := make(map[rune]bool, len(set))
	for r := range set {
		copied[r] = true
	}
	return copied
}

func intersectSets(a, b map[rune]bool) map[rune]bool {
	intersection := make(map[rune]bool)
	for r := range a {
		if b[r] {
			intersection[r] = true
		}
	}
	return intersection
}

func soleMember(set map[rune]bool) rune {
	for r := range set {
		return r
	}
	return 0
}
