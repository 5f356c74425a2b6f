package lexer

// charClass is the lexical class of one input position.
type charClass uint8

const (
	classOther charClass = iota
	classSep             // configured field separator
	classQuote           // configured quote character
	classCR              // \r
	classLF              // \n
	classEOF             // sentinel position after the last byte
	numCharClasses
)

// dfaState is a state of the lexical machine.
type dfaState uint8

const (
	stateRecordStart dfaState = iota // no byte of the current row consumed yet
	stateFieldStart                  // just after a field separator
	stateUnquoted
	stateQuoted
	stateQuoteSeen // a quote inside a quoted field; closing or first half of a pair
	stateAfterCR   // a CR that may be followed by LF
	stateDone
	stateError
	numStates
)

// dfaAction is a bit set of side effects attached to a transition. Bits are
// applied in declaration order.
type dfaAction uint16

const (
	actionBeginRow    dfaAction = 1 << iota // row starts at this byte
	actionBeginToken                        // unquoted token starts at this byte
	actionBeginQuoted                       // quoted token starts at this byte
	actionPushToken                         // token ends here; append its field
	actionPushNil                           // append an absent field
	actionMarkCR                            // remember a CR as a pending separator
	actionRecordLF                          // record ends with LF at this byte
	actionRecordCR                          // record ends with the pending CR
	actionRecordCRLF                        // record ends with the pending CR and this LF
	actionFinish                            // input exhausted
	actionIllegalQuoting
	actionUnclosedQuote
	actionReprocess // feed this byte again in the next state
)

// transition is the table entry for one (state, class) pair.
type transition struct {
	next   dfaState
	action dfaAction
}

// dfaTransitions is the machine's transition table.
// [currentState][charClass] -> (nextState, actions)
var dfaTransitions [numStates][numCharClasses]transition

func init() {
	initDFATransitions()
}

func initDFATransitions() {
	// Done and Error absorb everything.
	for c := charClass(0); c < numCharClasses; c++ {
		dfaTransitions[stateDone][c] = transition{stateDone, 0}
		dfaTransitions[stateError][c] = transition{stateError, 0}
	}

	// stateRecordStart: a blank line here produces no row.
	dfaTransitions[stateRecordStart][classOther] = transition{stateUnquoted, actionBeginRow | actionBeginToken}
	dfaTransitions[stateRecordStart][classSep] = transition{stateFieldStart, actionBeginRow | actionPushNil}
	dfaTransitions[stateRecordStart][classQuote] = transition{stateQuoted, actionBeginRow | actionBeginQuoted}
	dfaTransitions[stateRecordStart][classCR] = transition{stateAfterCR, actionMarkCR}
	dfaTransitions[stateRecordStart][classLF] = transition{stateRecordStart, actionRecordLF}
	dfaTransitions[stateRecordStart][classEOF] = transition{stateDone, actionFinish}

	// stateFieldStart: a field is owed even if nothing follows the separator.
	dfaTransitions[stateFieldStart][classOther] = transition{stateUnquoted, actionBeginToken}
	dfaTransitions[stateFieldStart][classSep] = transition{stateFieldStart, actionPushNil}
	dfaTransitions[stateFieldStart][classQuote] = transition{stateQuoted, actionBeginQuoted}
	dfaTransitions[stateFieldStart][classCR] = transition{stateAfterCR, actionPushNil | actionMarkCR}
	dfaTransitions[stateFieldStart][classLF] = transition{stateRecordStart, actionPushNil | actionRecordLF}
	dfaTransitions[stateFieldStart][classEOF] = transition{stateDone, actionPushNil | actionFinish}

	// stateUnquoted
	dfaTransitions[stateUnquoted][classOther] = transition{stateUnquoted, 0}
	dfaTransitions[stateUnquoted][classSep] = transition{stateFieldStart, actionPushToken}
	dfaTransitions[stateUnquoted][classQuote] = transition{stateError, actionIllegalQuoting}
	dfaTransitions[stateUnquoted][classCR] = transition{stateAfterCR, actionPushToken | actionMarkCR}
	dfaTransitions[stateUnquoted][classLF] = transition{stateRecordStart, actionPushToken | actionRecordLF}
	dfaTransitions[stateUnquoted][classEOF] = transition{stateDone, actionPushToken | actionFinish}

	// stateQuoted: separators and line breaks are content.
	dfaTransitions[stateQuoted][classOther] = transition{stateQuoted, 0}
	dfaTransitions[stateQuoted][classSep] = transition{stateQuoted, 0}
	dfaTransitions[stateQuoted][classQuote] = transition{stateQuoteSeen, 0}
	dfaTransitions[stateQuoted][classCR] = transition{stateQuoted, 0}
	dfaTransitions[stateQuoted][classLF] = transition{stateQuoted, 0}
	dfaTransitions[stateQuoted][classEOF] = transition{stateError, actionUnclosedQuote}

	// stateQuoteSeen: the token ends one byte past the closing quote.
	dfaTransitions[stateQuoteSeen][classOther] = transition{stateError, actionIllegalQuoting}
	dfaTransitions[stateQuoteSeen][classSep] = transition{stateFieldStart, actionPushToken}
	dfaTransitions[stateQuoteSeen][classQuote] = transition{stateQuoted, 0}
	dfaTransitions[stateQuoteSeen][classCR] = transition{stateAfterCR, actionPushToken | actionMarkCR}
	dfaTransitions[stateQuoteSeen][classLF] = transition{stateRecordStart, actionPushToken | actionRecordLF}
	dfaTransitions[stateQuoteSeen][classEOF] = transition{stateDone, actionPushToken | actionFinish}

	// stateAfterCR: the row has been closed out; only the separator length is open.
	for c := charClass(0); c < numCharClasses; c++ {
		dfaTransitions[stateAfterCR][c] = transition{stateRecordStart, actionRecordCR | actionReprocess}
	}
	dfaTransitions[stateAfterCR][classLF] = transition{stateRecordStart, actionRecordCRLF}
	dfaTransitions[stateAfterCR][classEOF] = transition{stateDone, actionRecordCR | actionFinish}
}

// newClassTable builds the byte classifier for a separator/quote pair.
// Config validation guarantees the two differ and neither is CR or LF.
func newClassTable(sep, quote byte) [256]charClass {
	var t [256]charClass
	t[sep] = classSep
	t[quote] = classQuote
	t['\r'] = classCR
	t['\n'] = classLF
	return t
}
