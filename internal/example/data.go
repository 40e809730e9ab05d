package example

// Example is a parsed structured puzzle example. It is a pure function
// of one puzzle page's HTML; only the HTML is ever persisted, and
// parsing is redone on every read.
//
// Data is always present. The remaining fields use the empty string for
// "absent": Part2Data only exists when the part-2 narrative carries its
// own walkthrough example, and the answers only exist when the
// narrative states them (Part2Answer additionally requires part 2 to be
// unlocked).
type Example struct {
	Data        string
	Part2Data   string
	Part1Answer string
	Part2Answer string
}

// scanState is the state carried across the forward scan of the
// narrative's flattened child elements.
type scanState struct {
	// sawPhrase: a paragraph announcing an example has been seen for
	// the current part.
	sawPhrase bool
	// captured: a qualifying example block has already been captured
	// for the current part.
	captured bool
	// inPart2: the part-2 heading has been passed.
	inPart2 bool
}
