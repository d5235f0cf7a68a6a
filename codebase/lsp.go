package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/closuredoc/config"
	"github.com/dhamidi/closuredoc/diag"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "closuredoc"

var log = commonlog.GetLogger("closuredoc.lsp")

type LSPServer struct {
	codebase *Codebase
	cfg      *config.Config
	handler  protocol.Handler
	server   *server.Server
	version  string

	mu     sync.Mutex
	open   map[string]bool
	notify glsp.NotifyFunc
	cancel context.CancelFunc
}

// NewLSPServer returns a server that parses documents with cfg; nil
// selects config.Default().
func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	ls := &LSPServer{
		version: version,
		cfg:     cfg,
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.cfg)
	log.Infof("workspace root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	start := time.Now()
	if err := ls.codebase.ScanAll(context.Background(), 0); err != nil {
		log.Errorf("scan %s: %s", ls.codebase.RootDir(), err)
	}
	log.Infof("indexed %d files in %s", len(ls.codebase.Paths()), time.Since(start))

	watchCtx, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel
	w := NewFileWatcher(ls.codebase, 2*time.Second)
	w.Skip = ls.isOpen
	w.OnChange = ls.publish
	go w.Run(watchCtx)
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.cancel != nil {
		ls.cancel()
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) update(path, text string) {
	if !IsSource(path) {
		return
	}
	ls.publish(path, ls.codebase.UpdateFile(path, []byte(text)))
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	ls.open[path] = true
	ls.mu.Unlock()
	ls.update(path, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(path, textChange.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.mu.Lock()
	delete(ls.open, path)
	ls.mu.Unlock()
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
		ls.publish(path, nil)
		return nil
	}
	ls.publish(path, ls.codebase.GetFile(path))
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.update(path, *params.Text)
	} else if err := ls.codebase.ScanFile(path); err == nil {
		ls.publish(path, ls.codebase.GetFile(path))
	}
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil {
		return nil, nil
	}
	pos, err := fromProtocolPosition(f.Lines, params.Position)
	if err != nil {
		return nil, nil
	}
	t, span, ok := f.TypeAtPoint(pos)
	if !ok || t == nil {
		return nil, nil
	}
	rng, err := toProtocolRange(f.Lines, span)
	if err != nil {
		return nil, err
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```js\n" + t.String() + "\n```",
		},
		Range: &rng,
	}, nil
}

// publish sends the diagnostics of f; a nil f clears them.
func (ls *LSPServer) publish(path string, f *FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}
	items := []protocol.Diagnostic{}
	if f != nil {
		items = ProtocolDiagnostics(f)
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: items,
	})
}

// ProtocolDiagnostics converts the diagnostics of a file for publishing.
func ProtocolDiagnostics(f *FileInfo) []protocol.Diagnostic {
	src := lsName
	items := make([]protocol.Diagnostic, 0, len(f.Diagnostics))
	for _, d := range f.Diagnostics {
		rng, err := toProtocolRange(f.Lines, d.Span)
		if err != nil {
			log.Warningf("%s: %s", d, err)
			continue
		}
		sev := toProtocolSeverity(d.Severity)
		items = append(items, protocol.Diagnostic{
			Range:    rng,
			Severity: &sev,
			Source:   &src,
			Message:  d.Text(),
		})
	}
	return items
}

func toProtocolSeverity(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
