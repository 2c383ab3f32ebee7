package grpc

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/linker"
	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"
)

//go:embed protos/*.proto
var senzingProtoFS embed.FS

// SenzingProtos returns the embedded Senzing service definitions (szengine,
// szconfig, szconfigmanager, szdiagnostic, szproduct) as filename → source.
// A fresh map is returned on every call.
func SenzingProtos() map[string]string {
	files := make(map[string]string)
	entries, err := fs.ReadDir(senzingProtoFS, "protos")
	if err != nil {
		// The directory is embedded at build time; a read failure is a build defect.
		panic(err)
	}
	for _, entry := range entries {
		raw, err := senzingProtoFS.ReadFile(path.Join("protos", entry.Name()))
		if err != nil {
			panic(err)
		}
		files[entry.Name()] = string(raw)
	}
	return files
}

// FindMethod searches the given compiled proto files for a method. The name
// may be qualified by service ("SzEngine/AddRecord" or
// "szengine.SzEngine/AddRecord") or be a bare method name; a bare name that
// exists on more than one service is rejected as ambiguous.
//
// Returns:
//   - protoreflect.FileDescriptor: the file containing the method,
//   - protoreflect.MethodDescriptor: the method descriptor,
//   - error: if the method cannot be found or is ambiguous.
func FindMethod(files linker.Files, name string) (protoreflect.FileDescriptor, protoreflect.MethodDescriptor, error) {
	serviceName, methodName := splitMethodName(name)

	var (
		foundFile   protoreflect.FileDescriptor
		foundMethod protoreflect.MethodDescriptor
	)
	for _, file := range files {
		services := file.Services()
		for i := 0; i < services.Len(); i++ {
			service := services.Get(i)
			if serviceName != "" && string(service.Name()) != serviceName && string(service.FullName()) != serviceName {
				continue
			}
			method := service.Methods().ByName(protoreflect.Name(methodName))
			if method == nil {
				continue
			}
			if foundMethod != nil {
				return nil, nil, fmt.Errorf("method %s is ambiguous: found on %s and %s",
					name, foundMethod.Parent().FullName(), service.FullName())
			}
			foundFile, foundMethod = file, method
		}
	}
	if foundMethod == nil {
		return nil, nil, fmt.Errorf("method %s not found in provided proto files", name)
	}
	return foundFile, foundMethod, nil
}

// splitMethodName separates an optional service qualifier from the method.
// A leading slash, as in a full gRPC method path, is ignored.
func splitMethodName(name string) (service, method string) {
	name = strings.TrimPrefix(name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// Compile compiles proto sources (filename → content) into descriptors. It is
// the compilation step NewClient performs, exposed for tooling and tests.
func Compile(protoFiles map[string]string) (linker.Files, error) {
	return getProtoDescriptors(protoFiles)
}

// getProtoDescriptors compiles the provided proto sources (filename → content)
// into linker.Files using protocompile with standard imports enabled. The
// input map is not modified.
//
// Returns a non-nil set of file descriptors or an error if compilation fails.
func getProtoDescriptors(protoFiles map[string]string) (linker.Files, error) {
	if len(protoFiles) == 0 {
		return nil, fmt.Errorf("no proto files provided")
	}
	accessor := protocompile.SourceAccessorFromMap(protoFiles)
	r := protocompile.WithStandardImports(&protocompile.SourceResolver{Accessor: accessor})
	compiler := protocompile.Compiler{
		Resolver:       r,
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	names := slices.Sorted(maps.Keys(protoFiles))
	fds, err := compiler.Compile(context.Background(), names...)
	if err != nil || fds == nil {
		zap.L().Error("failed to compile proto files", zap.Error(err))
		return nil, fmt.Errorf("failed to compile proto files: %w", err)
	}
	return fds, nil
}
