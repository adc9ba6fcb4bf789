/*
   Series-Q - CPU opcode, flag and fault definitions.

   Copyright 2026, Series-Q contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

// Register-Register opcodes (high byte 0x00-0x3F, 2-byte instructions).
const (
	opNop = 0x00

	opMov  = 0x01
	opAdd  = 0x02
	opAddC = 0x03
	opSub  = 0x04
	opSubC = 0x05
	opAnd  = 0x06
	opOr   = 0x07
	opXor  = 0x08
	opXnor = 0x09
	opShl  = 0x0A
	opShr  = 0x0B
	opSal  = 0x0C
	opSar  = 0x0D
	opCmp  = 0x0E
	opCmpS = 0x0F

	opAddQ  = 0x10
	opSubQ  = 0x11
	opAndQ  = 0x12
	opOrQ   = 0x13
	opXorQ  = 0x14
	opXnorQ = 0x15
	opShlQ  = 0x16
	opShrQ  = 0x17
	opSalQ  = 0x18
	opSarQ  = 0x19
	opShlLQ = 0x1A // "long quick": immediate biased +16
	opShrLQ = 0x1B
	opSalLQ = 0x1C
	opSarLQ = 0x1D

	opTruncB = 0x20
	opTruncH = 0x21
	opSextB  = 0x22
	opSextH  = 0x23
	opZextB  = 0x24
	opZextH  = 0x25
	opInsB   = 0x26
	opInsH   = 0x27

	opIf  = 0x2A // skip next instruction if condition true
	opIfN = 0x2B // skip next instruction if condition false

	opLF     = 0x30 // set R[regD] <- F[regR]
	opSF     = 0x31 // set F[regD] <- R[regR]
	opLSel   = 0x32 // set S_selector[regD] <- R[regR]
	opSSel   = 0x33 // set R[regD] <- S_selector[regR]
	opLMPK   = 0x34 // set MPK[regD] <- R[regR]
	opSMPK   = 0x35 // set R[regD] <- MPK[regR]
	opCSel   = 0x36 // copy whole segment regR -> segment regD
	opLSDTR  = 0x37 // read SDTR into R[regD] (base), R[regR] (len)
	opSSDTR  = 0x38 // write SDTR from R[regD] (base), R[regR] (len); reloads PEBA/PLBA
	opSSelHC = 0x39 // load segment regD from descriptor table by selector in R[regR]
)

// RMX/RM opcodes. A 4-byte instruction's high byte selects RMX (0x40-0x5F)
// or RM (0x60-0x7F); the low five bits pick the operation below.
const (
	rmxBase = 0x40
	rmBase  = 0x60

	memLW  = 0x00
	memLB  = 0x01
	memLBU = 0x02
	memLH  = 0x03
	memLHU = 0x04
	memSW  = 0x05
	memSB  = 0x06
	memSH  = 0x07
	memLA  = 0x08
	memBAL = 0x09
)

// Condition codes tested by IF/IFN, selected by the low 3 bits of regD.
const (
	condEQ = iota // E
	condNE
	condLTU // L
	condGEU // !L
	condLTS // S
	condGES // !S
	condCY  // C
	condOV  // V
)

// F[0] PLGEVCSB condition-flag bits.
const (
	flagP uint8 = 0x80
	flagL uint8 = 0x40
	flagG uint8 = 0x20
	flagE uint8 = 0x10
	flagV uint8 = 0x08
	flagC uint8 = 0x04
	flagS uint8 = 0x02
	flagB uint8 = 0x01
)

// F[8] bit layout: bit 0 is application-state, bits 1-3 are the current
// priority level.
const (
	f8AppState  uint8 = 0x01
	f8LevelMask uint8 = 0x0E
	f8LevelShift       = 1
)

// Segment flag bits (S_flags).
const (
	segR uint8 = 0x80
	segW uint8 = 0x40
	segX uint8 = 0x20
	segU uint8 = 0x01
)

// Fixed segment register indices.
const (
	segPS   = 15
	segLS   = 14
	segSSR7 = 7
)

// Fault codes: 8-bit, sign-extended for uniformity with immediates and
// with F[10..11]/F[12..15] reporting.
const (
	SupervisorAccess   int8 = -1
	OutOfBounds        int8 = -2
	IllegalInstruction int8 = -3
	SegmentationFault  int8 = -4
	ReadFault          int8 = -5
	WriteFault         int8 = -6
)

const maxFaultDepth = 8
