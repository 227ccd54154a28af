package errors

// ValidateOffset checks that offset addresses a symbol of a node of the
// given length, i.e. 0 <= offset < length.
func ValidateOffset(offset, length int) error {
	if offset < 0 || offset >= length {
		return New(ErrCodeInvalidPosition, "offset %d outside [0, %d)", offset, length)
	}
	return nil
}

// ValidateSplit checks that offset is an interior split point of a node of
// the given length, i.e. 0 < offset < length. Splitting at either end would
// produce an empty node.
func ValidateSplit(offset, length int) error {
	if offset <= 0 || offset >= length {
		return New(ErrCodeInvalidPosition, "split offset %d outside (0, %d)", offset, length)
	}
	return nil
}

// ValidateSymbols checks that every symbol is below the alphabet size.
// The index of the first offending symbol is reported.
func ValidateSymbols[S ~uint8](symbols []S, size int) error {
	for i, s := range symbols {
		if int(s) >= size {
			return New(ErrCodeInvalidInput, "symbol %d at index %d outside alphabet of size %d", s, i, size)
		}
	}
	return nil
}
