package mirror

// registerBuiltins installs every converter this engine ships with
// (spec sections 4.E and 4.F), in a fixed order. Registry tie-breaking
// (last-registered wins among equal priorities) decides between built-ins
// in a few places, so the order matters: enumConverter follows
// integerConverter so a type with registered enum values is claimed as an
// enum, and genericStructConverter follows nullableConverter so it claims
// pointers to structs (both report priority 1 there). byteSliceConverter
// reports MaxDepth, one below the exact-type converters, so net.IP and
// json.RawMessage go to ipAddrConverter and rawJSONConverter. A caller's
// own WithConverter registrations always sort after these by construction
// order.
func registerBuiltins(e *Engine) {
	e.converters.Add(boolConverter{})
	e.converters.Add(integerConverter{})
	e.converters.Add(floatConverter{})
	e.converters.Add(complexConverter{})
	e.converters.Add(charConverter{})
	e.converters.Add(stringConverter{})

	e.converters.Add(decimalConverter{})
	e.converters.Add(dateTimeConverter{})
	e.converters.Add(dateOnlyConverter{})
	e.converters.Add(timeOnlyConverter{})
	e.converters.Add(timeSpanConverter{})
	e.converters.Add(guidConverter{})
	e.converters.Add(bigIntConverter{})
	e.converters.Add(versionConverter{})
	e.converters.Add(uriConverter{})
	e.converters.Add(ipAddrConverter{})
	e.converters.Add(ipEndpointConverter{})
	e.converters.Add(rawJSONConverter{})
	e.converters.Add(enumConverter{enums: e.enums})
	e.converters.Add(exceptionConverter{})
	e.converters.Add(refTupleConverter{reg: e.refTuples})
	e.converters.Add(typeHandleConverter{})
	e.converters.Add(fieldHandleConverter{})
	e.converters.Add(propertyHandleConverter{})
	e.converters.Add(methodHandleConverter{})
	e.converters.Add(constructorHandleConverter{})
	e.converters.Add(parameterHandleConverter{})

	e.converters.Add(byteSliceConverter{})
	e.converters.Add(setConverter{})
	e.converters.Add(dictConverter{})
	e.converters.Add(sequenceConverter{})
	e.converters.Add(nullableConverter{})

	e.converters.Add(genericStructConverter{})
}
