package mirror

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for engine events, generalizing zoobzio-cereal's per-boundary
// (receive/load/store/send) start/complete pairs to this engine's four
// operations plus the registry mutation events its converter/blacklist
// model introduces.
var (
	SignalSerializeStart     = capitan.NewSignal("mirror.serialize.start", "Serialize operation beginning")
	SignalSerializeComplete  = capitan.NewSignal("mirror.serialize.complete", "Serialize operation finished")
	SignalDeserializeStart   = capitan.NewSignal("mirror.deserialize.start", "Deserialize operation beginning")
	SignalDeserializeComplete = capitan.NewSignal("mirror.deserialize.complete", "Deserialize operation finished")
	SignalPopulateStart      = capitan.NewSignal("mirror.populate.start", "Populate operation beginning")
	SignalPopulateComplete   = capitan.NewSignal("mirror.populate.complete", "Populate operation finished")
	SignalInvokeStart        = capitan.NewSignal("mirror.invoke.start", "Invoke operation beginning")
	SignalInvokeComplete     = capitan.NewSignal("mirror.invoke.complete", "Invoke operation finished")

	SignalConverterAdded    = capitan.NewSignal("mirror.registry.converter_added", "Converter registered")
	SignalConverterRemoved  = capitan.NewSignal("mirror.registry.converter_removed", "Converter removed")
	SignalTypeBlacklisted   = capitan.NewSignal("mirror.registry.type_blacklisted", "Type added to the blacklist")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyMemberName  = capitan.NewStringKey("member_name")
	KeyDepth       = capitan.NewIntKey("depth")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeyWarnings    = capitan.NewIntKey("warning_count")
)

func emitSerializeStart(typeName string) {
	capitan.Emit(context.Background(), SignalSerializeStart, KeyTypeName.Field(typeName))
}

func emitSerializeComplete(typeName string, duration time.Duration, warnings int, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyWarnings.Field(warnings),
	}
	if err != nil {
		capitan.Error(ctx, SignalSerializeComplete, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalSerializeComplete, fields...)
}

func emitDeserializeStart(typeName string) {
	capitan.Emit(context.Background(), SignalDeserializeStart, KeyTypeName.Field(typeName))
}

func emitDeserializeComplete(typeName string, duration time.Duration, warnings int, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyWarnings.Field(warnings),
	}
	if err != nil {
		capitan.Error(ctx, SignalDeserializeComplete, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalDeserializeComplete, fields...)
}

func emitPopulateStart(typeName string) {
	capitan.Emit(context.Background(), SignalPopulateStart, KeyTypeName.Field(typeName))
}

func emitPopulateComplete(typeName string, duration time.Duration, warnings int, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyWarnings.Field(warnings),
	}
	if err != nil {
		capitan.Error(ctx, SignalPopulateComplete, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalPopulateComplete, fields...)
}

func emitInvokeStart(member string) {
	capitan.Emit(context.Background(), SignalInvokeStart, KeyMemberName.Field(member))
}

func emitInvokeComplete(member string, duration time.Duration, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyMemberName.Field(member),
		KeyDuration.Field(duration),
	}
	if err != nil {
		capitan.Error(ctx, SignalInvokeComplete, append(fields, KeyError.Field(err))...)
		return
	}
	capitan.Emit(ctx, SignalInvokeComplete, fields...)
}

func emitConverterAdded(typeName string) {
	capitan.Emit(context.Background(), SignalConverterAdded, KeyTypeName.Field(typeName))
}

func emitConverterRemoved(typeName string) {
	capitan.Emit(context.Background(), SignalConverterRemoved, KeyTypeName.Field(typeName))
}

func emitTypeBlacklisted(typeName string) {
	capitan.Emit(context.Background(), SignalTypeBlacklisted, KeyTypeName.Field(typeName))
}
