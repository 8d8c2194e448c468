package peg

import (
	"io"

	"github.com/icza/bitio"
)

// EncodeSnapshot writes a compact binary snapshot of f's node graph to w,
// bit-packing small integer fields the way the lexer in the surrounding
// toolchain packs Whitespace tokens. The snapshot exists for diagnostic
// replay; it is not consumed anywhere else in this package.
func EncodeSnapshot(f *Function, w io.Writer) error {
	bw := bitio.NewWriter(w)

	if err := writeString(bw, f.Name); err != nil {
		return err
	}
	if err := writeUint(bw, uint64(len(f.nodes))); err != nil {
		return err
	}

	for _, n := range f.nodes {
		if err := bw.WriteByte(byte(n.kind)); err != nil {
			return err
		}
		if err := writeString(bw, n.name); err != nil {
			return err
		}

		switch n.kind {
		case BlockKind:
			if err := bw.WriteBool(n.isEntry); err != nil {
				return err
			}
			if err := bw.WriteBool(n.isVirtualForward); err != nil {
				return err
			}
			if err := writeNodeRef(bw, n.peer); err != nil {
				return err
			}
			if err := writeUint(bw, uint64(len(n.preds))); err != nil {
				return err
			}
			for _, p := range n.preds {
				if err := writeUint(bw, uint64(p.id)); err != nil {
					return err
				}
			}
			if err := writeUint(bw, uint64(len(n.succs))); err != nil {
				return err
			}
			for _, s := range n.succs {
				if err := writeUint(bw, uint64(s.id)); err != nil {
					return err
				}
			}
			if err := writeNodeRef(bw, n.child); err != nil {
				return err
			}
		case ConditionKind:
			if err := writeNodeRef(bw, n.conditionOf); err != nil {
				return err
			}
		case PhiKind:
			if err := writeNodeRef(bw, n.cond); err != nil {
				return err
			}
			if err := writeNodeRef(bw, n.whenTrue); err != nil {
				return err
			}
			if err := writeNodeRef(bw, n.whenFalse); err != nil {
				return err
			}
		case ThetaKind:
			if err := writeNodeRef(bw, n.base); err != nil {
				return err
			}
			if err := writeNodeRef(bw, n.recurrence); err != nil {
				return err
			}
		}
	}

	return bw.Close()
}

func writeString(bw *bitio.Writer, s string) error {
	if err := writeUint(bw, uint64(len(s))); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := bw.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeUint(bw *bitio.Writer, v uint64) error {
	return bw.WriteBits(v, 32)
}

// writeNodeRef writes a presence bit followed by the referenced node's
// id, or just a false presence bit for a nil reference.
func writeNodeRef(bw *bitio.Writer, n *Node) error {
	if n == nil {
		return bw.WriteBool(false)
	}
	if err := bw.WriteBool(true); err != nil {
		return err
	}
	return writeUint(bw, uint64(n.id))
}

// SnapshotHeader is the subset of a snapshot decodable without the
// originating Function: enough to sanity-check a file before a full
// rebuild (not implemented here, since reconstructing cross-references
// needs the originating Oracle to re-run APEG construction; this core
// only ever decodes for inspection).
type SnapshotHeader struct {
	Name      string
	NodeCount int
}

// DecodeSnapshotHeader reads just the name and node count written by
// EncodeSnapshot, for tooling that wants to sanity-check a snapshot file
// without reconstructing the full graph.
func DecodeSnapshotHeader(r io.Reader) (SnapshotHeader, error) {
	br := bitio.NewReader(r)
	name, err := readString(br)
	if err != nil {
		return SnapshotHeader{}, err
	}
	count, err := readUint(br)
	if err != nil {
		return SnapshotHeader{}, err
	}
	return SnapshotHeader{Name: name, NodeCount: int(count)}, nil
}

func readString(br *bitio.Reader) (string, error) {
	n, err := readUint(br)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		buf[i] = b
	}
	return string(buf), nil
}

func readUint(br *bitio.Reader) (uint64, error) {
	return br.ReadBits(32)
}
