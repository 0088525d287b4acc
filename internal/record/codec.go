package record

// Serialize writes every field into dest in declared order and returns the
// number of bytes used. Padding bytes after a variable field are zeroed.
func (s *Schema) Serialize(dest []byte) (int, error) {
	size := s.SizeToStore()
	if len(dest) < size {
		return 0, ErrBufferTooSmall.Fmt(len(dest), size)
	}

	cursor := 0

	for _, e := range s.entries {
		f := e.Field
		data := f.Bytes()

		if f.Variable() {
			dest[cursor] = byte(len(data))
			cursor += lengthPrefixSize
		}

		n := copy(dest[cursor:cursor+f.MaxSize()], data)
		clear(dest[cursor+n : cursor+f.MaxSize()])

		cursor += f.MaxSize()
	}

	return cursor, nil
}

// Marshal serializes the schema into a freshly allocated buffer.
func (s *Schema) Marshal() []byte {
	buf := make([]byte, s.SizeToStore())

	// the buffer is sized by SizeToStore, so Serialize cannot fail
	_, _ = s.Serialize(buf)

	return buf
}

// Deserialize restores every field from src in declared order. The cursor
// always advances by a field's full slot width, whatever its stored length.
// Every length prefix is checked before any field is touched; a field that
// rejects its bytes stops the restore and is named in the error.
func (s *Schema) Deserialize(src []byte) error {
	size := s.SizeToStore()
	if len(src) < size {
		return ErrBufferTooSmall.Fmt(len(src), size)
	}

	if err := s.checkPrefixes(src); err != nil {
		return err
	}

	cursor := 0

	for _, e := range s.entries {
		f := e.Field
		n := f.MaxSize()

		if f.Variable() {
			n = int(src[cursor])
			cursor += lengthPrefixSize
		}

		if err := f.Replace(src[cursor : cursor+n]); err != nil {
			return ErrReplaceField.Fmt(e.Name).Wrap(err)
		}

		cursor += f.MaxSize()
	}

	return nil
}

func (s *Schema) checkPrefixes(src []byte) error {
	cursor := 0

	for _, e := range s.entries {
		f := e.Field

		if f.Variable() {
			if n := int(src[cursor]); n > f.MaxSize() {
				return ErrFieldTooLarge.Fmt(e.Name, n, f.MaxSize())
			}
		}

		cursor += slotWidth(f)
	}

	return nil
}
