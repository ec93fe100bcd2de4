package mines

// AssertionError reports a broken board invariant, such as a reveal
// flood reaching a mine or more flags than mines. It is only ever
// raised through panic: once the board's own bookkeeping is wrong
// there is nothing sensible left to do with it.
type AssertionError struct {
	message string
}

func (e AssertionError) Error() string {
	return e.message
}
