package wasm

import (
	"bytes"
	"encoding/binary"
)

// Encode encodes the module to WebAssembly binary format
func (m *Module) Encode() []byte {
	w := &bytes.Buffer{}

	// Magic number and version
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[4:8], Version)
	w.Write(header[:])

	// Type section
	if len(m.Types) > 0 {
		sec := &bytes.Buffer{}
		WriteLEB128u(sec, uint32(len(m.Types)))
		for _, ft := range m.Types {
			sec.WriteByte(FuncTypeByte)
			writeValTypes(sec, ft.Params)
			writeValTypes(sec, ft.Results)
		}
		writeSection(w, SectionType, sec.Bytes())
	}

	// Import section
	if len(m.Imports) > 0 {
		sec := &bytes.Buffer{}
		WriteLEB128u(sec, uint32(len(m.Imports)))
		for _, imp := range m.Imports {
			writeName(sec, imp.Module)
			writeName(sec, imp.Name)
			sec.WriteByte(imp.Kind)
			if imp.Kind == KindFunc {
				WriteLEB128u(sec, imp.TypeIdx)
			}
		}
		writeSection(w, SectionImport, sec.Bytes())
	}

	// Function section
	if len(m.Funcs) > 0 {
		sec := &bytes.Buffer{}
		WriteLEB128u(sec, uint32(len(m.Funcs)))
		for _, typeIdx := range m.Funcs {
			WriteLEB128u(sec, typeIdx)
		}
		writeSection(w, SectionFunction, sec.Bytes())
	}

	// Memory section
	if len(m.Memories) > 0 {
		sec := &bytes.Buffer{}
		WriteLEB128u(sec, uint32(len(m.Memories)))
		for _, mem := range m.Memories {
			writeMemoryType(sec, mem)
		}
		writeSection(w, SectionMemory, sec.Bytes())
	}

	// Export section
	if len(m.Exports) > 0 {
		sec := &bytes.Buffer{}
		WriteLEB128u(sec, uint32(len(m.Exports)))
		for _, exp := range m.Exports {
			writeName(sec, exp.Name)
			sec.WriteByte(exp.Kind)
			WriteLEB128u(sec, exp.Index)
		}
		writeSection(w, SectionExport, sec.Bytes())
	}

	// Code section
	if len(m.Code) > 0 {
		sec := &bytes.Buffer{}
		WriteLEB128u(sec, uint32(len(m.Code)))
		for _, body := range m.Code {
			b := &bytes.Buffer{}
			WriteLEB128u(b, uint32(len(body.Locals)))
			for _, l := range body.Locals {
				WriteLEB128u(b, l.Count)
				b.WriteByte(byte(l.ValType))
			}
			b.Write(body.Code)
			WriteLEB128u(sec, uint32(b.Len()))
			sec.Write(b.Bytes())
		}
		writeSection(w, SectionCode, sec.Bytes())
	}

	return w.Bytes()
}

// writeSection writes a section as [id][LEB128 length][payload].
func writeSection(w *bytes.Buffer, id byte, payload []byte) {
	w.WriteByte(id)
	WriteLEB128u(w, uint32(len(payload)))
	w.Write(payload)
}

func writeValTypes(w *bytes.Buffer, types []ValType) {
	WriteLEB128u(w, uint32(len(types)))
	for _, t := range types {
		w.WriteByte(byte(t))
	}
}

func writeName(w *bytes.Buffer, s string) {
	WriteLEB128u(w, uint32(len(s)))
	w.WriteString(s)
}

func writeMemoryType(w *bytes.Buffer, mem MemoryType) {
	if mem.HasMax {
		w.WriteByte(LimitsHasMax)
		WriteLEB128u(w, mem.Min)
		WriteLEB128u(w, mem.Max)
	} else {
		w.WriteByte(LimitsNoMax)
		WriteLEB128u(w, mem.Min)
	}
}
