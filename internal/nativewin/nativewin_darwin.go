//go:build darwin

package nativewin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>

static void runOnMain(void (^block)(void)) {
    if ([NSThread isMainThread]) {
        block();
    } else {
        dispatch_sync(dispatch_get_main_queue(), block);
    }
}

// MainWindowHandle returns the app's main NSWindow, falling back to the first
// window when none is key yet (the window starts hidden). NULL if none exist.
void* MainWindowHandle(void) {
    __block void *handle = NULL;
    runOnMain(^{
        NSWindow *window = [NSApp mainWindow];
        if (window == nil) {
            window = [[NSApp windows] firstObject];
        }
        handle = (void *)window;
    });
    return handle;
}

void SetWindowBackground(void *handle, double r, double g, double b, double a) {
    runOnMain(^{
        @autoreleasepool {
            NSWindow *window = (NSWindow *)handle;
            NSColor *color = [NSColor colorWithDeviceRed:r green:g blue:b alpha:a];
            [window setBackgroundColor:color];
        }
    });
}
*/
import "C"

import "unsafe"

// MainWindow returns the handle of the application's main window.
func MainWindow() (Handle, error) {
	ptr := C.MainWindowHandle()
	if ptr == nil {
		return Handle{}, ErrNoWindow
	}
	return Handle{ptr: unsafe.Pointer(ptr)}, nil
}

// SetBackground sets the native background color of the window behind h.
func SetBackground(h Handle, c Color) error {
	if h.IsNil() {
		return ErrNilHandle
	}
	c = c.Clamped()
	C.SetWindowBackground(h.ptr, C.double(c.R), C.double(c.G), C.double(c.B), C.double(c.A))
	return nil
}
