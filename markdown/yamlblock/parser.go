package yamlblock

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v2"
)

var KindBlock = ast.NewNodeKind("YAMLBlock")

// Block is a parsed addin block. Err is set when the body is no valid
// YAML for the addin.
type Block struct {
	ast.BaseBlock
	Addin  Addin
	Object interface{}
	Err    error

	headerOnly bool
}

func (n *Block) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Addin": n.Addin.AddinKey()}, nil)
}

func (n *Block) Kind() ast.NodeKind {
	return KindBlock
}

type blockParser struct {
	parent *Extension
}

func (b *blockParser) Trigger() []byte {
	return []byte{':'}
}

func (b *blockParser) Open(node ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	fields := strings.Fields(string(line))

	if len(fields) < 2 || len(fields) > 3 || fields[0] != "::" || (len(fields) == 3 && fields[2] != "---") {
		return nil, parser.NoChildren
	}

	addin, ok := b.parent.lookup(fields[1])
	if !ok {
		return nil, parser.NoChildren
	}

	reader.Advance(segment.Len() - 1)

	return &Block{
		Addin:      addin,
		headerOnly: len(fields) == 2,
	}, parser.NoChildren
}

func (b *blockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	if node.(*Block).headerOnly {
		return parser.Close
	}

	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}

	if strings.TrimSpace(string(line)) == "---" {
		reader.Advance(segment.Len())
		return parser.Close
	}

	node.Lines().Append(segment)

	return parser.Continue | parser.NoChildren
}

func (b *blockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	block := node.(*Block)
	block.Object = block.Addin.Make(pc)

	var body bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		body.Write(segment.Value(reader.Source()))
	}

	if body.Len() > 0 {
		block.Err = yaml.Unmarshal(body.Bytes(), block.Object)
	}
}

func (b *blockParser) CanInterruptParagraph() bool {
	return false
}

func (b *blockParser) CanAcceptIndentedLine() bool {
	return false
}
