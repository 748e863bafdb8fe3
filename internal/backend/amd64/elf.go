package amd64

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
)

// writeELFObject serialises text as the .text section of an ELF64
// relocatable object (ET_REL) for EM_X86_64, with one global STT_FUNC
// symbol per entry in spans, and writes it to path. It builds the file
// directly from debug/elf's exported header/section/symbol struct
// types rather than hand-mirroring their byte layout.
func writeELFObject(path string, text []byte, spans []funcSpan) error {
	const (
		shNull = iota
		shText
		shSymtab
		shStrtab
		shShstrtab
		shCount
	)

	shstrtab := newStringTable()
	nameText := shstrtab.add(".text")
	nameSymtab := shstrtab.add(".symtab")
	nameStrtab := shstrtab.add(".strtab")
	nameShstrtab := shstrtab.add(".shstrtab")

	strtab := newStringTable()
	symtab := []elf.Sym64{{}} // index 0 is the reserved null symbol
	for _, s := range spans {
		symtab = append(symtab, elf.Sym64{
			Name:  strtab.add(s.name),
			Info:  elf.ST_INFO(elf.STB_GLOBAL, elf.STT_FUNC),
			Shndx: shText,
			Value: uint64(s.start),
			Size:  uint64(s.size),
		})
	}

	var buf bytes.Buffer
	le := binary.LittleEndian

	const headerSize = 64
	textOff := uint64(headerSize)
	symtabOff := textOff + uint64(len(text))
	strtabOff := symtabOff + uint64(len(symtab))*24 // sizeof(elf.Sym64)
	shstrtabOff := strtabOff + uint64(len(strtab.bytes()))
	shOff := alignUp(shstrtabOff+uint64(len(shstrtab.bytes())), 8)

	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	ident[elf.EI_OSABI] = byte(elf.ELFOSABI_NONE)

	hdr := elf.Header64{
		Ident:     ident,
		Type:      uint16(elf.ET_REL),
		Machine:   uint16(elf.EM_X86_64),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     shOff,
		Ehsize:    headerSize,
		Shentsize: 64,
		Shnum:     shCount,
		Shstrndx:  shShstrtab,
	}
	if err := binary.Write(&buf, le, &hdr); err != nil {
		return err
	}

	buf.Write(text)
	for _, sym := range symtab {
		if err := binary.Write(&buf, le, &sym); err != nil {
			return err
		}
	}
	buf.Write(strtab.bytes())
	buf.Write(shstrtab.bytes())
	buf.Write(make([]byte, int(shOff-(shstrtabOff+uint64(len(shstrtab.bytes())))))) // padding to shOff

	sections := []elf.Section64{
		{}, // SHT_NULL
		{
			Name: nameText, Type: uint32(elf.SHT_PROGBITS),
			Flags: uint64(elf.SHF_ALLOC | elf.SHF_EXECINSTR),
			Off:   textOff, Size: uint64(len(text)), Addralign: 16,
		},
		{
			Name: nameSymtab, Type: uint32(elf.SHT_SYMTAB),
			Off: symtabOff, Size: uint64(len(symtab)) * 24, Addralign: 8,
			Link: shStrtab, Info: 1 /* first non-local symbol index */, Entsize: 24,
		},
		{
			Name: nameStrtab, Type: uint32(elf.SHT_STRTAB),
			Off: strtabOff, Size: uint64(len(strtab.bytes())), Addralign: 1,
		},
		{
			Name: nameShstrtab, Type: uint32(elf.SHT_STRTAB),
			Off: shstrtabOff, Size: uint64(len(shstrtab.bytes())), Addralign: 1,
		},
	}
	for _, sh := range sections {
		if err := binary.Write(&buf, le, &sh); err != nil {
			return err
		}
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func alignUp(n uint64, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

// stringTable builds an ELF string-table section: a leading NUL byte
// followed by each added string, NUL-terminated, returning the byte
// offset to use as a Sym64/Section64 Name field.
type stringTable struct {
	buf []byte
}

func newStringTable() *stringTable {
	return &stringTable{buf: []byte{0}}
}

func (s *stringTable) add(name string) uint32 {
	off := uint32(len(s.buf))
	s.buf = append(s.buf, name...)
	s.buf = append(s.buf, 0)
	return off
}

func (s *stringTable) bytes() []byte { return s.buf }
