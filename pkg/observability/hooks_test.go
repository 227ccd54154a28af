package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopAlignHooks{}
	a.OnAlignStart(ctx, 7, 6)
	a.OnAlignComplete(ctx, 7, 6, 5, time.Millisecond, nil)

	b := NoopBuildHooks{}
	b.OnEdit("snp", 4)
	b.OnLinearize(4, 4, time.Millisecond, nil)

	p := NoopPipelineHooks{}
	p.OnRoundStart(ctx, 1, 100)
	p.OnRoundComplete(ctx, 1, 12, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "alignment")
	c.OnCacheMiss(ctx, "alignment")
	c.OnCacheSet(ctx, "alignment", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Align().(NoopAlignHooks); !ok {
		t.Error("Align() should return NoopAlignHooks by default")
	}
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Build() should return NoopBuildHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customAlign := &testAlignHooks{}
	SetAlignHooks(customAlign)
	if Align() != customAlign {
		t.Error("SetAlignHooks should set custom hooks")
	}

	customBuild := &testBuildHooks{}
	SetBuildHooks(customBuild)
	if Build() != customBuild {
		t.Error("SetBuildHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Align().(NoopAlignHooks); !ok {
		t.Error("Reset() should restore NoopAlignHooks")
	}
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Reset() should restore NoopBuildHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBuildHooks{}
	SetBuildHooks(custom)
	SetBuildHooks(nil)

	if Build() != custom {
		t.Error("SetBuildHooks(nil) should be ignored")
	}

	Reset()
}

type testAlignHooks struct{ NoopAlignHooks }
type testBuildHooks struct{ NoopBuildHooks }
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
