package interactive

// SplitForTest exposes split for testing.
var SplitForTest = split
