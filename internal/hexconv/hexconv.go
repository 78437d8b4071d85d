package hexconv

var decodeTable = [256]byte{
	'0': 0x0 + 1,
	'1': 0x1 + 1,
	'2': 0x2 + 1,
	'3': 0x3 + 1,
	'4': 0x4 + 1,
	'5': 0x5 + 1,
	'6': 0x6 + 1,
	'7': 0x7 + 1,
	'8': 0x8 + 1,
	'9': 0x9 + 1,
	'a': 0xa + 1,
	'b': 0xb + 1,
	'c': 0xc + 1,
	'd': 0xd + 1,
	'e': 0xe + 1,
	'f': 0xf + 1,
	'A': 0xA + 1,
	'B': 0xB + 1,
	'C': 0xC + 1,
	'D': 0xD + 1,
	'E': 0xE + 1,
	'F': 0xF + 1,
}

// Parse returns char value + 1 IF char is a valid hex, 0 otherwise.
// So in order to treat the returned value correctly, make sure it isn't
// 0 and subtract 1 afterwards
func Parse(char byte) byte {
	return decodeTable[char]
}
