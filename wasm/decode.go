package wasm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// IsModule reports whether data begins with the WebAssembly magic number.
func IsModule(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == Magic
}

// ParseModule parses a WebAssembly binary into the core-module subset this
// package models. Unknown sections are skipped.
func ParseModule(data []byte) (*Module, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("module too short: %d bytes", len(data))
	}
	if !IsModule(data) {
		return nil, fmt.Errorf("invalid magic number: % x", data[:4])
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != Version {
		return nil, fmt.Errorf("unsupported version: %d", v)
	}

	m := &Module{}
	r := bytes.NewReader(data[8:])

	for {
		id, err := r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		size, err := ReadLEB128u(r)
		if err != nil {
			return nil, fmt.Errorf("section %d: read size: %w", id, err)
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("section %d: truncated payload: %w", id, err)
		}

		sec := bytes.NewReader(payload)
		switch id {
		case SectionType:
			err = m.parseTypeSection(sec)
		case SectionImport:
			err = m.parseImportSection(sec)
		case SectionFunction:
			err = m.parseFunctionSection(sec)
		case SectionMemory:
			err = m.parseMemorySection(sec)
		case SectionExport:
			err = m.parseExportSection(sec)
		case SectionCode:
			err = m.parseCodeSection(sec)
		default:
			// Table, global, element, data, and custom sections are outside
			// the subset this pipeline produces.
		}
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", id, err)
		}
	}

	return m, nil
}

// ExportNames parses data and returns the names of all exports in order.
func ExportNames(data []byte) ([]string, error) {
	m, err := ParseModule(data)
	if err != nil {
		return nil, err
	}
	return m.ExportNames(), nil
}

func (m *Module) parseTypeSection(r *bytes.Reader) error {
	count, err := ReadLEB128u(r)
	if err != nil {
		return err
	}
	m.Types = make([]FuncType, 0, count)
	for i := uint32(0); i < count; i++ {
		form, err := r.ReadByte()
		if err != nil {
			return err
		}
		if form != FuncTypeByte {
			return fmt.Errorf("type %d: unsupported form 0x%02x", i, form)
		}
		params, err := readValTypes(r)
		if err != nil {
			return err
		}
		results, err := readValTypes(r)
		if err != nil {
			return err
		}
		m.Types = append(m.Types, FuncType{Params: params, Results: results})
	}
	return nil
}

func (m *Module) parseImportSection(r *bytes.Reader) error {
	count, err := ReadLEB128u(r)
	if err != nil {
		return err
	}
	m.Imports = make([]Import, 0, count)
	for i := uint32(0); i < count; i++ {
		mod, err := readName(r)
		if err != nil {
			return err
		}
		name, err := readName(r)
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}
		imp := Import{Module: mod, Name: name, Kind: kind}
		switch kind {
		case KindFunc:
			if imp.TypeIdx, err = ReadLEB128u(r); err != nil {
				return err
			}
		case KindTable:
			if _, err = r.ReadByte(); err != nil { // reftype
				return err
			}
			if _, err = readLimits(r); err != nil {
				return err
			}
		case KindMemory:
			if _, err = readLimits(r); err != nil {
				return err
			}
		case KindGlobal:
			if _, err = r.ReadByte(); err != nil { // valtype
				return err
			}
			if _, err = r.ReadByte(); err != nil { // mutability
				return err
			}
		default:
			return fmt.Errorf("import %d: unknown kind 0x%02x", i, kind)
		}
		m.Imports = append(m.Imports, imp)
	}
	return nil
}

func (m *Module) parseFunctionSection(r *bytes.Reader) error {
	count, err := ReadLEB128u(r)
	if err != nil {
		return err
	}
	m.Funcs = make([]uint32, 0, count)
	for i := uint32(0); i < count; i++ {
		typeIdx, err := ReadLEB128u(r)
		if err != nil {
			return err
		}
		m.Funcs = append(m.Funcs, typeIdx)
	}
	return nil
}

func (m *Module) parseMemorySection(r *bytes.Reader) error {
	count, err := ReadLEB128u(r)
	if err != nil {
		return err
	}
	m.Memories = make([]MemoryType, 0, count)
	for i := uint32(0); i < count; i++ {
		mem, err := readLimits(r)
		if err != nil {
			return err
		}
		m.Memories = append(m.Memories, mem)
	}
	return nil
}

func (m *Module) parseExportSection(r *bytes.Reader) error {
	count, err := ReadLEB128u(r)
	if err != nil {
		return err
	}
	m.Exports = make([]Export, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := readName(r)
		if err != nil {
			return err
		}
		kind, err := r.ReadByte()
		if err != nil {
			return err
		}
		index, err := ReadLEB128u(r)
		if err != nil {
			return err
		}
		m.Exports = append(m.Exports, Export{Name: name, Kind: kind, Index: index})
	}
	return nil
}

func (m *Module) parseCodeSection(r *bytes.Reader) error {
	count, err := ReadLEB128u(r)
	if err != nil {
		return err
	}
	m.Code = make([]FuncBody, 0, count)
	for i := uint32(0); i < count; i++ {
		size, err := ReadLEB128u(r)
		if err != nil {
			return err
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return err
		}

		br := bytes.NewReader(body)
		localCount, err := ReadLEB128u(br)
		if err != nil {
			return err
		}
		locals := make([]LocalEntry, 0, localCount)
		for j := uint32(0); j < localCount; j++ {
			n, err := ReadLEB128u(br)
			if err != nil {
				return err
			}
			vt, err := br.ReadByte()
			if err != nil {
				return err
			}
			locals = append(locals, LocalEntry{Count: n, ValType: ValType(vt)})
		}
		code := make([]byte, br.Len())
		if _, err := io.ReadFull(br, code); err != nil {
			return err
		}
		m.Code = append(m.Code, FuncBody{Locals: locals, Code: code})
	}
	return nil
}

func readValTypes(r *bytes.Reader) ([]ValType, error) {
	count, err := ReadLEB128u(r)
	if err != nil {
		return nil, err
	}
	types := make([]ValType, 0, count)
	for i := uint32(0); i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		types = append(types, ValType(b))
	}
	return types, nil
}

func readName(r *bytes.Reader) (string, error) {
	size, err := ReadLEB128u(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readLimits(r *bytes.Reader) (MemoryType, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return MemoryType{}, err
	}
	min, err := ReadLEB128u(r)
	if err != nil {
		return MemoryType{}, err
	}
	mem := MemoryType{Min: min}
	if flags&LimitsHasMax != 0 {
		max, err := ReadLEB128u(r)
		if err != nil {
			return MemoryType{}, err
		}
		mem.Max = max
		mem.HasMax = true
	}
	return mem, nil
}
