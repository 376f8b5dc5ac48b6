//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    int pid;
    char *name;
    char *bundle_id;
} app_info;

static char *dup_ns(NSString *s) {
    return strdup(s ? [s UTF8String] : "");
}

static void fill(app_info *out, NSRunningApplication *app) {
    out->pid = app.processIdentifier;
    out->name = dup_ns(app.localizedName);
    out->bundle_id = dup_ns(app.bundleIdentifier);
}

// Returns regular (Dock-visible) applications in a malloc'd array.
static int ws_running(app_info **out) {
    @autoreleasepool {
        NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        *out = malloc(sizeof(app_info) * (apps.count > 0 ? apps.count : 1));
        int n = 0;
        for (NSRunningApplication *app in apps) {
            if (app.activationPolicy != NSApplicationActivationPolicyRegular) continue;
            fill(&(*out)[n++], app);
        }
        return n;
    }
}

static int ws_frontmost(app_info *out) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (!app) return -1;
        fill(out, app);
        return 0;
    }
}

static void free_app(app_info *a) {
    free(a->name);
    free(a->bundle_id);
}

// Copies the bundle path for the identifier, or returns NULL.
static char *ws_resolve(const char *bundle_id) {
    @autoreleasepool {
        NSURL *url = [[NSWorkspace sharedWorkspace]
            URLForApplicationWithBundleIdentifier:[NSString stringWithUTF8String:bundle_id]];
        if (!url) return NULL;
        return dup_ns(url.path);
    }
}

// Activates a running instance or opens the application. Returns NULL on
// success or a malloc'd error message.
static char *ws_launch(const char *bundle_id) {
    @autoreleasepool {
        NSString *ident = [NSString stringWithUTF8String:bundle_id];
        NSArray *running = [NSRunningApplication runningApplicationsWithBundleIdentifier:ident];
        if (running.count > 0) {
            [running.firstObject activateWithOptions:NSApplicationActivateAllWindows];
            return NULL;
        }
        NSURL *url = [[NSWorkspace sharedWorkspace] URLForApplicationWithBundleIdentifier:ident];
        if (!url) return strdup("application not found");

        __block NSString *failure = nil;
        dispatch_semaphore_t done = dispatch_semaphore_create(0);
        NSWorkspaceOpenConfiguration *cfg = [NSWorkspaceOpenConfiguration configuration];
        cfg.activates = YES;
        [[NSWorkspace sharedWorkspace] openApplicationAtURL:url
                                              configuration:cfg
                                          completionHandler:^(NSRunningApplication *app, NSError *err) {
            if (err) failure = [err localizedDescription];
            dispatch_semaphore_signal(done);
        }];
        dispatch_semaphore_wait(done, dispatch_time(DISPATCH_TIME_NOW, 10 * NSEC_PER_SEC));
        return failure ? dup_ns(failure) : NULL;
    }
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/mj1618/desktop-agent/internal/model"
	"github.com/mj1618/desktop-agent/internal/platform"
)

// Workspace implements platform.Apps using NSWorkspace.
type Workspace struct{}

// NewWorkspace returns an NSWorkspace-backed application service.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

func toApp(a *C.app_info) model.App {
	return model.App{
		PID:      int(a.pid),
		Name:     C.GoString(a.name),
		BundleID: C.GoString(a.bundle_id),
	}
}

func (w *Workspace) Running() ([]model.App, error) {
	var arr *C.app_info
	n := int(C.ws_running(&arr))
	defer C.free(unsafe.Pointer(arr))

	infos := unsafe.Slice(arr, n)
	apps := make([]model.App, 0, n)
	for i := range infos {
		apps = append(apps, toApp(&infos[i]))
		C.free_app(&infos[i])
	}
	return apps, nil
}

func (w *Workspace) Frontmost() (model.App, error) {
	var info C.app_info
	if C.ws_frontmost(&info) != 0 {
		return model.App{}, errors.New("no frontmost application")
	}
	defer C.free_app(&info)
	return toApp(&info), nil
}

func (w *Workspace) Resolve(identifier string) (string, error) {
	cID := C.CString(identifier)
	defer C.free(unsafe.Pointer(cID))

	path := C.ws_resolve(cID)
	if path == nil {
		return "", fmt.Errorf("application %q: %w", identifier, platform.ErrNotFound)
	}
	defer C.free(unsafe.Pointer(path))
	return C.GoString(path), nil
}

func (w *Workspace) Launch(identifier string) error {
	cID := C.CString(identifier)
	defer C.free(unsafe.Pointer(cID))

	if msg := C.ws_launch(cID); msg != nil {
		defer C.free(unsafe.Pointer(msg))
		return fmt.Errorf("launch %s: %s", identifier, C.GoString(msg))
	}
	return nil
}
