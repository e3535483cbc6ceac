package apdu

// SelectByName builds a SELECT command addressing a DF/application by name
// (AID or PSE/PPSE directory name).
func SelectByName(name []byte) Command {
	return Command{CLA: 0x00, INS: 0xA4, P1: 0x04, P2: 0x00, Data: name, Ne: 256}
}

// ReadRecord builds a READ RECORD command for the given record number
// within the file identified by sfi (short file identifier, bottom 5 bits
// significant).
func ReadRecord(record, sfi byte) Command {
	return Command{CLA: 0x00, INS: 0xB2, P1: record, P2: (sfi << 3) | 0x04, Ne: 256}
}

// GetProcessingOptions builds a GET PROCESSING OPTIONS command carrying the
// PDOL-encoded (or literal 83 00) data.
func GetProcessingOptions(data []byte) Command {
	return Command{CLA: 0x80, INS: 0xA8, P1: 0x00, P2: 0x00, Data: data, Ne: 256}
}

// InternalAuthenticate builds an INTERNAL AUTHENTICATE command carrying the
// DDOL-encoded data.
func InternalAuthenticate(data []byte) Command {
	return Command{CLA: 0x00, INS: 0x88, P1: 0x00, P2: 0x00, Data: data, Ne: 256}
}

// getResponse builds the GET RESPONSE command the exchange state machine
// issues while SW1=0x61.
func getResponse(sw2 byte) Command {
	return Command{CLA: 0x00, INS: 0xC0, P1: 0x00, P2: 0x00, Ne: leFromSW2(sw2)}
}
