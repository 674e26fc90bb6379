package asset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

// ErrInvalidShader is returned for malformed hook shader files.
var ErrInvalidShader = errors.New("asset: invalid hook shader")

// HookEntryPoint is the fragment entry point every pass must define.
const HookEntryPoint = "hook"

// Pass is one render pass of a hook shader.
type Pass struct {
	// Hooks lists the pipeline stages (e.g. MAIN, LUMA) the pass runs at.
	Hooks []string

	Desc  string
	Binds []string

	// Save names the texture the output is stored as; empty means the
	// hooked texture is replaced.
	Save string

	// Width and Height are size expressions; empty keeps the hooked size.
	Width  string
	Height string

	// Components is the number of output components, 0 meaning 4.
	Components int

	// When is a condition expression; empty means always.
	When string

	// Source is the WGSL module of the pass.
	Source string

	// SPIRV is the compiled fragment module.
	SPIRV []byte
}

// Shader is a parsed custom hook shader.
type Shader struct {
	Passes []Pass
}

// Hooks returns the distinct stages any pass hooks, in first-seen order.
func (s *Shader) Hooks() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.Passes {
		for _, h := range p.Hooks {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	return out
}

// ParseShader splits src into passes and compiles each pass.
func ParseShader(src []byte) (*Shader, error) {
	passes, err := splitPasses(string(src))
	if err != nil {
		return nil, err
	}
	for i := range passes {
		p := &passes[i]
		p.SPIRV, err = compilePass(p.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: pass %d (%s): %v", ErrInvalidShader, i, p.label(), err)
		}
	}
	return &Shader{Passes: passes}, nil
}

func (p *Pass) label() string {
	if p.Desc != "" {
		return p.Desc
	}
	return strings.Join(p.Hooks, ",")
}

func splitPasses(src string) ([]Pass, error) {
	var (
		passes []Pass
		cur    *Pass
		body   strings.Builder
		inBody bool
	)
	finish := func() {
		if cur != nil {
			cur.Source = body.String()
			passes = append(passes, *cur)
		}
		body.Reset()
	}

	for n, raw := range strings.Split(src, "\n") {
		line := strings.TrimRight(raw, "\r")
		directive, ok := strings.CutPrefix(strings.TrimSpace(line), "//!")
		if !ok {
			if cur == nil {
				if strings.TrimSpace(line) != "" && !strings.HasPrefix(strings.TrimSpace(line), "//") {
					return nil, fmt.Errorf("%w: line %d: code before first directive", ErrInvalidShader, n+1)
				}
				continue
			}
			inBody = true
			body.WriteString(line)
			body.WriteByte('\n')
			continue
		}

		if cur == nil || inBody {
			finish()
			cur = &Pass{}
			inBody = false
		}
		if err := cur.apply(directive); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidShader, n+1, err)
		}
	}
	finish()

	if len(passes) == 0 {
		return nil, fmt.Errorf("%w: no passes", ErrInvalidShader)
	}
	for i, p := range passes {
		if len(p.Hooks) == 0 {
			return nil, fmt.Errorf("%w: pass %d has no HOOK", ErrInvalidShader, i)
		}
		if strings.TrimSpace(p.Source) == "" {
			return nil, fmt.Errorf("%w: pass %d (%s) has no body", ErrInvalidShader, i, p.label())
		}
	}
	return passes, nil
}

func (p *Pass) apply(directive string) error {
	key, val, _ := strings.Cut(strings.TrimSpace(directive), " ")
	val = strings.TrimSpace(val)
	switch key {
	case "HOOK":
		if val == "" {
			return errors.New("HOOK needs a stage")
		}
		p.Hooks = append(p.Hooks, val)
	case "DESC":
		p.Desc = val
	case "BIND":
		if val == "" {
			return errors.New("BIND needs a texture name")
		}
		p.Binds = append(p.Binds, val)
	case "SAVE":
		p.Save = val
	case "WIDTH":
		p.Width = val
	case "HEIGHT":
		p.Height = val
	case "COMPONENTS":
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 || n > 4 {
			return fmt.Errorf("COMPONENTS must be 1..4, got %q", val)
		}
		p.Components = n
	case "WHEN":
		p.When = val
	default:
		return fmt.Errorf("unknown directive %q", key)
	}
	return nil
}

func compilePass(src string) ([]byte, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, err
	}
	if !hasHookEntry(module) {
		return nil, fmt.Errorf("missing @fragment fn %s", HookEntryPoint)
	}
	return naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
}

func hasHookEntry(m *ir.Module) bool {
	for _, ep := range m.EntryPoints {
		if ep.Name == HookEntryPoint && ep.Stage == ir.StageFragment {
			return true
		}
	}
	return false
}
