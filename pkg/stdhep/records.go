package stdhep

import (
	"fmt"

	"github.com/samcharles93/stdhep/internal/xdr"
)

// fields reads the members of one block. The first failure sticks and every
// later read becomes a no-op, so a decoder can list its fields in order and
// check err once.
type fields struct {
	x     *xdr.Reader
	block BlockID
	err   error
}

func (f *fields) fail(name string, err error) {
	if err != nil && f.err == nil {
		f.err = fmt.Errorf("read %s %s: %w", f.block, name, inBlock(err))
	}
}

func (f *fields) int32(name string) int32 {
	if f.err != nil {
		return 0
	}
	v, err := f.x.Int32()
	f.fail(name, err)
	return v
}

func (f *fields) uint32(name string) uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.x.Uint32()
	f.fail(name, err)
	return v
}

func (f *fields) uint64(name string) uint64 {
	if f.err != nil {
		return 0
	}
	v, err := f.x.Uint64()
	f.fail(name, err)
	return v
}

func (f *fields) float32(name string) float32 {
	if f.err != nil {
		return 0
	}
	v, err := f.x.Float32()
	f.fail(name, err)
	return v
}

func (f *fields) float64(name string) float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.x.Float64()
	f.fail(name, err)
	return v
}

func (f *fields) string(name string) string {
	if f.err != nil {
		return ""
	}
	v, err := f.x.String()
	f.fail(name, err)
	return v
}

func (f *fields) strings(name string, n int) []string {
	if f.err != nil {
		return nil
	}
	v, err := f.x.Strings(n)
	f.fail(name, err)
	return v
}

func (f *fields) int32s(name string, dst []int32) []int32 {
	if f.err != nil {
		return dst[:0]
	}
	v, err := f.x.AppendInt32s(dst)
	f.fail(name, err)
	return v
}

func (f *fields) float64s(name string, dst []float64) []float64 {
	if f.err != nil {
		return dst[:0]
	}
	v, err := f.x.AppendFloat64s(dst)
	f.fail(name, err)
	return v
}

func (f *fields) uint32s(name string) {
	if f.err == nil {
		_, err := f.x.Uint32s()
		f.fail(name, err)
	}
}

// pointers consumes a file-offset array of the given width.
func (f *fields) pointers(name string, w pointerWidth) {
	if f.err != nil {
		return
	}
	var err error
	if w == pointer64 {
		_, err = f.x.Uint64s()
	} else {
		_, err = f.x.Uint32s()
	}
	f.fail(name, err)
}

// prologue is the triple that introduces every block.
type prologue struct {
	id      BlockID
	count   int32
	version string
	offset  int64
}

// readPrologue returns io.EOF untouched when the stream ends cleanly before
// the block id; any later short read is a truncation.
func readPrologue(x *xdr.Reader) (prologue, error) {
	p := prologue{offset: x.Offset()}
	id, err := x.Int32()
	if err != nil {
		return p, err
	}
	p.id = BlockID(id)
	f := fields{x: x, block: p.id}
	p.count = f.int32("element count")
	p.version = f.string("version")
	return p, f.err
}

// decodeFileHeader reads the body of the file header block into s.
func decodeFileHeader(x *xdr.Reader, v SchemaVersion, s *Sample) error {
	f := fields{x: x, block: BlockFileHeader}
	s.Title = f.string("title")
	s.Comment = f.string("comment")
	s.CreationDate = f.string("creation date")
	if v.closingDate() {
		s.ClosingDate = f.string("closing date")
	}
	s.ExpectedEvents = f.uint32("expected events")
	s.WrittenEvents = f.uint32("written events")
	if v.closingDate() {
		s.FirstTable = f.uint64("first table")
	} else {
		s.FirstTable = uint64(f.uint32("first table"))
	}
	s.TableDim = f.uint32("table dimension")
	nBlocks := f.uint32("block count")
	if v.ntuples() {
		s.NTuples = f.uint32("ntuple count")
	}
	if f.err == nil && nBlocks != 0 {
		s.BlockIDs = f.int32s("block ids", nil)
		s.BlockNames = f.strings("block names", len(s.BlockIDs))
	}
	s.Generator = generatorFromTitle(s.Title)
	return f.err
}

// decodeEventTable consumes an event index table; nothing is retained.
func decodeEventTable(x *xdr.Reader, w pointerWidth) error {
	f := fields{x: x, block: BlockEventTable}
	f.int32("idat")
	if w == pointer64 {
		f.uint64("next locator")
	} else {
		f.uint32("next locator")
	}
	f.int32s("event numbers", nil)
	f.int32s("store numbers", nil)
	f.int32s("run numbers", nil)
	f.uint32s("trigger masks")
	f.pointers("event pointers", w)
	return f.err
}

// decodeEventHeader consumes a per-event header; nothing is retained.
func decodeEventHeader(x *xdr.Reader, l eventHeaderLayout) error {
	f := fields{x: x, block: BlockEventHeader}
	f.int32("event number")
	f.int32("store number")
	f.int32("run number")
	f.int32("trigger mask")
	f.uint32("block count")
	dimBlocks := f.uint32("block dimension")
	var dimNTuples uint32
	if l.ntuples {
		f.uint32("ntuple count")
		dimNTuples = f.uint32("ntuple dimension")
	}
	if dimBlocks > 0 {
		f.int32s("block ids", nil)
		f.pointers("block pointers", l.width)
	}
	if l.ntuples && dimNTuples > 0 {
		f.int32s("ntuple ids", nil)
		f.pointers("ntuple pointers", l.width)
	}
	return f.err
}

// decodeRunSummary reads an STDCM1 block.
func decodeRunSummary(x *xdr.Reader, id BlockID, l runSummaryLayout) (RunInfo, error) {
	f := fields{x: x, block: id}
	var run RunInfo
	run.Requested = f.int32("nevtreq")
	run.Generated = f.int32("nevtgen")
	run.Written = f.int32("nevtwrt")
	run.CMEnergy = f.float32("stdecom")
	run.Xsection = f.float32("stdxsec")
	run.Seed1 = f.float64("stdseed1")
	run.Seed2 = f.float64("stdseed2")
	if l.names {
		run.GeneratorTag = f.string("generator name")
		run.PDFTag = f.string("pdf name")
	}
	if l.lastEvents {
		run.LastEvents = f.int32("nevtlh")
	}
	return run, f.err
}

// rawEvent holds the parallel arrays of one particle block. The slices are
// reused from one event to the next.
type rawEvent struct {
	block     BlockID
	number    int32
	count     int32
	status    []int32
	pdg       []int32
	mothers   []int32
	daughters []int32
	momenta   []float64
	vertices  []float64

	// STDHEP4 trailer
	weight   float64
	alphaQED float64
	alphaQCD float64
	idrupt   int32
}

func (b *rawEvent) reset(block BlockID) {
	b.block = block
	b.number = 0
	b.count = 0
	b.status = b.status[:0]
	b.pdg = b.pdg[:0]
	b.mothers = b.mothers[:0]
	b.daughters = b.daughters[:0]
	b.momenta = b.momenta[:0]
	b.vertices = b.vertices[:0]
	b.weight = 1
	b.alphaQED = 0
	b.alphaQCD = 0
	b.idrupt = 0
}

// decodeParticles reads a STDHEP or STDHEP4 particle block into b.
func decodeParticles(x *xdr.Reader, id BlockID, b *rawEvent) error {
	b.reset(id)
	f := fields{x: x, block: id}
	b.number = f.int32("nevhep")
	b.count = f.int32("nhep")
	b.status = f.int32s("isthep", b.status)
	b.pdg = f.int32s("idhep", b.pdg)
	b.mothers = f.int32s("jmohep", b.mothers)
	b.daughters = f.int32s("jdahep", b.daughters)
	b.momenta = f.float64s("phep", b.momenta)
	b.vertices = f.float64s("vhep", b.vertices)
	if id == BlockSTDHEP4 {
		b.weight = f.float64("event weight")
		b.alphaQED = f.float64("alpha qed")
		b.alphaQCD = f.float64("alpha qcd")
		f.float64s("dat", nil)
		f.float64s("spint", nil)
		f.int32s("idat", nil)
		b.idrupt = f.int32("idrupt")
	}
	return f.err
}
