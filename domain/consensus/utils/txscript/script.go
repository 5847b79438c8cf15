// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/kaspanet/scriptvm/util/binaryserializer"
)

// These are the constants specified for maximums in individual scripts.
const (
	MaxStackSize          = 1000  // Max combined height of stack and alt stack during execution.
	MaxScriptSize         = 10000 // Max bytes of a serialized script.
	MaxScriptElementSize  = 520   // Max bytes pushable to the stack.
	MaxPubKeysPerMultiSig = 20    // Multisig can't have more sigs than this.
)

// Cmd is a single script command: either an opcode or a data push.
type Cmd struct {
	opcode byte
	data   []byte
	isData bool
}

// OpCmd returns a command that executes the given opcode.
func OpCmd(op byte) Cmd {
	return Cmd{opcode: op}
}

// DataCmd returns a command that pushes a copy of data onto the stack.
func DataCmd(data []byte) Cmd {
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	return Cmd{data: dataCopy, isData: true}
}

// IsData returns whether the command is a data push.
func (c Cmd) IsData() bool {
	return c.isData
}

// Opcode returns the opcode of an opcode command. It is meaningless for data
// pushes.
func (c Cmd) Opcode() byte {
	return c.opcode
}

// Data returns a copy of the pushed data of a data command.
func (c Cmd) Data() []byte {
	if !c.isData {
		return nil
	}
	dataCopy := make([]byte, len(c.data))
	copy(dataCopy, c.data)
	return dataCopy
}

// String returns the disassembly of the command: the opcode name, or the
// pushed data in hex.
func (c Cmd) String() string {
	if !c.isData {
		return opcodeArray[c.opcode].name
	}
	if len(c.data) == 0 {
		return opcodeArray[Op0].name
	}
	return hex.EncodeToString(c.data)
}

// Script is an immutable sequence of commands.
type Script struct {
	cmds []Cmd
}

// NewScript returns a script made of the given commands.
func NewScript(cmds ...Cmd) *Script {
	cmdsCopy := make([]Cmd, len(cmds))
	copy(cmdsCopy, cmds)
	return &Script{cmds: cmdsCopy}
}

// Commands returns a copy of the commands of the script.
func (s *Script) Commands() []Cmd {
	cmdsCopy := make([]Cmd, len(s.cmds))
	copy(cmdsCopy, s.cmds)
	return cmdsCopy
}

// Len returns the number of commands in the script.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Add returns a new script made of the commands of s followed by the commands
// of other. It is used to join a signature script with the public key script
// it spends.
func (s *Script) Add(other *Script) *Script {
	cmds := make([]Cmd, 0, len(s.cmds)+len(other.cmds))
	cmds = append(cmds, s.cmds...)
	cmds = append(cmds, other.cmds...)
	return &Script{cmds: cmds}
}

// IsPushOnly returns true if the script only pushes data.
func (s *Script) IsPushOnly() bool {
	for _, cmd := range s.cmds {
		if cmd.isData {
			continue
		}
		if cmd.opcode != Op0 && cmd.opcode != Op1Negate &&
			(cmd.opcode < Op1 || cmd.opcode > Op16) {
			return false
		}
	}
	return true
}

// Evaluate executes the script against the signature digest z with no
// additional verification flags and returns whether it is valid.
func (s *Script) Evaluate(z *big.Int) bool {
	return Evaluate(s, z, ScriptNoFlags)
}

// ParseScript reads a serialized script: a varint length followed by that many
// bytes of raw script.
func ParseScript(r io.Reader) (*Script, error) {
	length, err := binaryserializer.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if length > MaxScriptSize {
		str := fmt.Sprintf("script size %d is larger than max allowed "+
			"size %d", length, MaxScriptSize)
		return nil, scriptError(ErrScriptTooBig, str)
	}

	raw := make([]byte, length)
	read, err := io.ReadFull(r, raw)
	if err != nil {
		str := fmt.Sprintf("script claims %d bytes but only %d could be "+
			"read: %s", length, read, err)
		return nil, scriptError(ErrScriptLengthMismatch, str)
	}
	return ParseScriptBytes(raw)
}

// ParseScriptBytes parses a raw script without a length prefix.
func ParseScriptBytes(raw []byte) (*Script, error) {
	cmds, err := parseCommands(raw)
	if err != nil {
		return nil, err
	}
	return &Script{cmds: cmds}, nil
}

// parseCommands splits a raw script into commands. Bytes OP_DATA_1 through
// OP_DATA_75 push that many following bytes, OP_PUSHDATA1/2/4 push the number
// of bytes given by the little-endian length that follows them, and every
// other byte is an opcode.
func parseCommands(raw []byte) ([]Cmd, error) {
	r := bytes.NewReader(raw)
	var cmds []Cmd
	for r.Len() > 0 {
		instr, _ := r.ReadByte()
		op := &opcodeArray[instr]
		if op.length == 1 {
			cmds = append(cmds, OpCmd(instr))
			continue
		}

		dataLen, err := readPushLength(r, op)
		if err != nil {
			return nil, err
		}
		if dataLen > uint64(r.Len()) {
			str := fmt.Sprintf("opcode %s pushes %d bytes, but script "+
				"only has %d remaining", op.name, dataLen, r.Len())
			return nil, scriptError(ErrMalformedPush, str)
		}

		data := make([]byte, dataLen)
		_, _ = r.Read(data)
		cmds = append(cmds, Cmd{data: data, isData: true})
	}
	return cmds, nil
}

// readPushLength returns the number of bytes pushed by the push opcode op,
// reading the length that follows OP_PUSHDATA1/2/4.
func readPushLength(r io.Reader, op *opcode) (uint64, error) {
	if op.length > 1 {
		return uint64(op.length - 1), nil
	}

	var dataLen uint64
	var err error
	switch op.length {
	case -1:
		var l uint8
		l, err = binaryserializer.Uint8(r)
		dataLen = uint64(l)
	case -2:
		var l uint16
		l, err = binaryserializer.Uint16(r)
		dataLen = uint64(l)
	case -4:
		var l uint32
		l, err = binaryserializer.Uint32(r)
		dataLen = uint64(l)
	default:
		str := fmt.Sprintf("invalid opcode length %d", op.length)
		return 0, scriptError(ErrInternal, str)
	}
	if err != nil {
		str := fmt.Sprintf("opcode %s requires %d bytes of length, but "+
			"script ended", op.name, -op.length)
		return 0, scriptError(ErrMalformedPush, str)
	}
	return dataLen, nil
}

// RawBytes returns the script without its length prefix. Pushes of up to 75
// bytes use a single length byte, longer ones OP_PUSHDATA1 or OP_PUSHDATA2.
// Pushes larger than MaxScriptElementSize can't be serialized, and neither can
// push opcodes given as bare opcode commands, since they have no data to carry.
func (s *Script) RawBytes() ([]byte, error) {
	var buf bytes.Buffer
	for _, cmd := range s.cmds {
		if !cmd.isData {
			op := &opcodeArray[cmd.opcode]
			if op.length != 1 {
				str := fmt.Sprintf("opcode %s requires push data and "+
					"can't be serialized on its own", op.name)
				return nil, scriptError(ErrMalformedPush, str)
			}
			buf.WriteByte(cmd.opcode)
			continue
		}
		err := writePush(&buf, cmd.data)
		if err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writePush(w *bytes.Buffer, data []byte) error {
	dataLen := len(data)
	switch {
	case dataLen <= int(OpData75):
		w.WriteByte(byte(dataLen))
	case dataLen <= 0xff:
		w.WriteByte(OpPushData1)
		if err := binaryserializer.PutUint8(w, uint8(dataLen)); err != nil {
			return err
		}
	case dataLen <= MaxScriptElementSize:
		w.WriteByte(OpPushData2)
		if err := binaryserializer.PutUint16(w, uint16(dataLen)); err != nil {
			return err
		}
	default:
		str := fmt.Sprintf("push of %d bytes exceeds the max allowed "+
			"size of %d", dataLen, MaxScriptElementSize)
		return scriptError(ErrElementTooBig, str)
	}
	w.Write(data)
	return nil
}

// Serialize returns the raw script prefixed by its length as a varint.
func (s *Script) Serialize() ([]byte, error) {
	raw, err := s.RawBytes()
	if err != nil {
		return nil, err
	}
	result := binaryserializer.AppendVarInt(make([]byte, 0, len(raw)+9), uint64(len(raw)))
	return append(result, raw...), nil
}

// String returns the one-line disassembly of the script, with commands
// separated by a single space.
func (s *Script) String() string {
	var disbuf strings.Builder
	for i, cmd := range s.cmds {
		if i > 0 {
			disbuf.WriteByte(' ')
		}
		disbuf.WriteString(cmd.String())
	}
	return disbuf.String()
}

// DisasmString formats a raw script as a one-line disassembly. When the script
// fails to parse, the returned error is that of the parser.
func DisasmString(raw []byte) (string, error) {
	script, err := ParseScriptBytes(raw)
	if err != nil {
		return "", err
	}
	return script.String(), nil
}
