package tlv

// validateAlphabetic requires every byte to be an ASCII letter.
func validateAlphabetic(b []byte) error {
	for _, c := range b {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return &UnsupportedCharError{Charset: "Alphabetic", Byte: c}
		}
	}
	return nil
}

// validateAlphanumeric requires every byte to be an ASCII letter or digit.
func validateAlphanumeric(b []byte) error {
	for _, c := range b {
		alpha := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
		digit := c >= '0' && c <= '9'
		if !alpha && !digit {
			return &UnsupportedCharError{Charset: "Alphanumeric", Byte: c}
		}
	}
	return nil
}

// validateAlphanumericSpecial requires every byte to be in the printable
// ASCII range 0x20-0x7E.
func validateAlphanumericSpecial(b []byte) error {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return &UnsupportedCharError{Charset: "AlphanumericSpecial", Byte: c}
		}
	}
	return nil
}
