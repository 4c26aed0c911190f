package md5

// PadForTest exposes pad.
var PadForTest = pad
