package record

import (
	"fmt"

	"github.com/arloliu/dedit/internal/pool"
	"github.com/arloliu/dedit/section"
)

// Game byte format:
//
//	0x00              {END}          end of record
//	0x01              {PAUSE}        wait for input
//	0x03              {NL}           line break
//	0x07 a            {WAIT:n}       n = a-0x30
//	0x0A a            {CLR:n}        text colour
//	0x10 a            {CHOICE:n}     choice marker
//	0x12 a            {VAR:n}        numeric variable
//	0x13+s hi lo      {MACRO:s:n}    n = (hi-0x30)*0xD0 + (lo-0x30)
//	0x2B..0x2F t      character      code 0xD0 + (lead-0x2B)*0xD0 + (t-0x30)
//	0x30..0xFF        character      code b-0x30
//	anything else     {x:HH}         raw byte
const (
	opEnd    byte = 0x00
	opPause  byte = 0x01
	opNL     byte = 0x03
	opWait   byte = 0x07
	opColor  byte = 0x0A
	opChoice byte = 0x10
	opVar    byte = 0x12
	opMacro  byte = 0x13

	opMacroLast = opMacro + section.MacroDictMaxSections - 1

	leadFirst byte = 0x2B
	leadLast  byte = 0x2F

	// operandBase is added to every operand and character byte.
	operandBase byte = 0x30
	// codeBlock is the number of codes addressable by one byte above operandBase.
	codeBlock = 0x100 - int(operandBase)

	maxOperand  = codeBlock - 1
	maxMacroRef = codeBlock*codeBlock - 1
)

const (
	tokEnd    = "END"
	tokPause  = "PAUSE"
	tokNL     = "NL"
	tokWait   = "WAIT"
	tokColor  = "CLR"
	tokChoice = "CHOICE"
	tokVar    = "VAR"
	tokMacro  = "MACRO"
	tokRaw    = "x"
)

// bareOps are opcodes without operand.
var bareOps = map[byte]string{
	opEnd:   tokEnd,
	opPause: tokPause,
	opNL:    tokNL,
}

// operandOps are opcodes followed by one operand byte.
var operandOps = map[byte]string{
	opWait:   tokWait,
	opColor:  tokColor,
	opChoice: tokChoice,
	opVar:    tokVar,
}

var tokenOps = func() map[string]byte {
	m := make(map[string]byte, len(bareOps)+len(operandOps))
	for op, name := range bareOps {
		m[name] = op
	}
	for op, name := range operandOps {
		m[name] = op
	}

	return m
}()

func isOperandOp(b byte) bool {
	_, ok := operandOps[b]
	return ok
}

func isMacroOp(b byte) bool {
	return b >= opMacro && b <= opMacroLast
}

func isLead(b byte) bool {
	return b >= leadFirst && b <= leadLast
}

// appendChar writes the byte form of a character code.
// The caller guarantees code < charset.CodeSpace.
func appendChar(buf *pool.ByteBuffer, code uint16) {
	if int(code) < codeBlock {
		_ = buf.WriteByte(byte(code) + operandBase)
		return
	}

	c := int(code) - codeBlock
	_ = buf.WriteByte(leadFirst + byte(c/codeBlock))   //nolint:gosec
	_ = buf.WriteByte(operandBase + byte(c%codeBlock)) //nolint:gosec
}

func writeRaw(buf *pool.ByteBuffer, raw ...byte) {
	for _, b := range raw {
		fmt.Fprintf(buf, "{%s:%02X}", tokRaw, b)
	}
}
