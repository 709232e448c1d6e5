package seriate

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/unkn0wn-root/seriate/internal/wire"
)

type altStringCodec struct{}

func (altStringCodec) TypeID() string            { return "string" }
func (altStringCodec) EncodedType() reflect.Type { return reflect.TypeOf(uint16(0)) }
func (altStringCodec) Serialize(_ *SerializationContext, _ any, _ *wire.Writer) error {
	return nil
}
func (altStringCodec) Deserialize(_ *DeserializationContext, _ *wire.Reader) (any, error) {
	return uint16(0), nil
}

func TestDuplicateTypeIDRejected(t *testing.T) {
	_, err := NewRegistryBuilder().Add(altStringCodec{}).Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate codec type id") {
		t.Fatalf("expected duplicate type id error, got %v", err)
	}
}

type dupTypeCodec struct{}

func (dupTypeCodec) TypeID() string            { return "string2" }
func (dupTypeCodec) EncodedType() reflect.Type { return reflect.TypeOf("") }
func (dupTypeCodec) Serialize(_ *SerializationContext, _ any, _ *wire.Writer) error {
	return nil
}
func (dupTypeCodec) Deserialize(_ *DeserializationContext, _ *wire.Reader) (any, error) {
	return "", nil
}

func TestDuplicateEncodedTypeRejected(t *testing.T) {
	_, err := NewRegistryBuilder().Add(dupTypeCodec{}).Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate codec for type") {
		t.Fatalf("expected duplicate encoded type error, got %v", err)
	}
}

type shapelessCodec struct{}

func (shapelessCodec) TypeID() string            { return "shapeless" }
func (shapelessCodec) EncodedType() reflect.Type { return reflect.TypeOf(int8(0)) }
func (shapelessCodec) Serialize(_ *SerializationContext, _ any, _ *wire.Writer) error {
	return nil
}

func TestCodecWithoutDecodeShapeRejected(t *testing.T) {
	_, err := NewRegistryBuilder().Add(shapelessCodec{}).Build()
	if err == nil || !strings.Contains(err.Error(), "exactly one of") {
		t.Fatalf("expected decode-shape error, got %v", err)
	}
}

// Wire indexes come from sorted TypeIDs, so registration order must not
// change the format.
func TestWireFormatStableAcrossRegistrationOrder(t *testing.T) {
	regA, err := NewRegistryBuilder().Add(boomCodec{}).Add(boxCodec{}).Build()
	if err != nil {
		t.Fatalf("Build A: %v", err)
	}
	regB, err := NewRegistryBuilder().Add(boxCodec{}).Add(boomCodec{}).Build()
	if err != nil {
		t.Fatalf("Build B: %v", err)
	}

	enc, err := regA.Marshal([]any{"k", int64(42)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := regB.Unmarshal(enc)
	if err != nil {
		t.Fatalf("Unmarshal with differently-ordered registry: %v", err)
	}
	got, ok := out.([]any)
	if !ok || len(got) != 2 || got[0] != "k" || got[1] != int64(42) {
		t.Fatalf("cross-registry decode mismatch: %#v", out)
	}
}

func TestRegistryLogsRegistrations(t *testing.T) {
	rec := &recordingLogger{}
	b := NewRegistryBuilder()
	b.Logger = rec
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rec.count("registered codec") == 0 {
		t.Fatalf("expected registration debug logs")
	}
}

func TestRegistrySafeForConcurrentUse(t *testing.T) {
	reg := newTestRegistry(t)
	enc, err := reg.Marshal([]any{"a", int64(1)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := reg.Unmarshal(enc); err != nil {
					t.Errorf("Unmarshal: %v", err)
					return
				}
				if _, err := reg.Marshal([]any{"b", int64(2)}); err != nil {
					t.Errorf("Marshal: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

// recordingLogger captures messages for assertions.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(msg string, _ Fields) { l.log(msg) }
func (l *recordingLogger) Info(msg string, _ Fields)  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, _ Fields)  { l.log(msg) }
func (l *recordingLogger) Error(msg string, _ Fields) { l.log(msg) }

func (l *recordingLogger) count(msg string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, m := range l.msgs {
		if m == msg {
			n++
		}
	}
	return n
}
