package samples

import "pylens/src/model"

var builtin = []model.Sample{
	{
		ID:          "hello-world",
		Title:       "Hello World",
		Description: "A main function behind the __main__ guard",
		Language:    "python",
		Difficulty:  model.DifficultyBeginner,
		Concepts:    []string{"functions", "print", "main guard"},
		Code: `# Hello World
def main():
    """Print a greeting."""
    print("Hello, World!")


if __name__ == "__main__":
    main()
`,
	},
	{
		ID:          "variables-types",
		Title:       "Variables and Data Types",
		Description: "Literals of the built-in types and f-string output",
		Language:    "python",
		Difficulty:  model.DifficultyBeginner,
		Concepts:    []string{"variables", "data types", "f-strings", "lists", "dictionaries"},
		Code: `# Variables and data types
name = "Alice"
age = 25
height = 5.6
is_student = True
hobbies = ["reading", "coding", "hiking"]
profile = {"name": name, "age": age}

print(f"Name: {name}")
print(f"Age next year: {age}")
print(hobbies)
print(profile)
print(height)
print(is_student)
`,
	},
	{
		ID:          "control-flow",
		Title:       "Control Flow",
		Description: "if/elif/else chains and a loop driving them",
		Language:    "python",
		Difficulty:  model.DifficultyBeginner,
		Concepts:    []string{"conditionals", "loops", "functions", "return values"},
		Code: `# Grade lookup
def grade_for(score):
    """Map a numeric score to a letter grade."""
    if score >= 90:
        return "A"
    elif score >= 80:
        return "B"
    elif score >= 70:
        return "C"
    return "F"


scores = [95, 82, 71, 40]
for score in scores:
    print(f"{score} -> {grade_for(score)}")
`,
	},
	{
		ID:          "loops-iteration",
		Title:       "Loops and Iteration",
		Description: "for, while and enumerate",
		Language:    "python",
		Difficulty:  model.DifficultyBeginner,
		Concepts:    []string{"for loops", "while loops", "range", "enumerate"},
		Code: `# Loop forms
numbers = [1, 2, 3, 4, 5]

for number in numbers:
    print(f"Number: {number}")

count = 0
while count < 3:
    print(f"Count: {count}")
    count += 1

for index, value in enumerate(numbers):
    print(f"{index}: {value}")

print(range(5))
`,
	},
	{
		ID:          "exception-handling",
		Title:       "Exception Handling",
		Description: "try/except/finally with specific exception types",
		Language:    "python",
		Difficulty:  model.DifficultyIntermediate,
		Concepts:    []string{"exception handling", "try-except", "finally", "custom exceptions"},
		Code: `# Exception handling
class ValidationError(Exception):
    """Raised when input is rejected."""


def parse_age(text):
    """Parse a non-negative age."""
    try:
        age = int(text)
    except ValueError as err:
        raise ValidationError(f"not a number: {text}") from err
    if age < 0:
        raise ValidationError("age must be positive")
    return age


try:
    print(parse_age("42"))
except ValidationError as err:
    print(f"invalid: {err}")
finally:
    print("done")
`,
	},
	{
		ID:          "classes-oop",
		Title:       "Classes and Inheritance",
		Description: "A base class, an override and a property",
		Language:    "python",
		Difficulty:  model.DifficultyIntermediate,
		Concepts:    []string{"classes", "inheritance", "properties", "method overriding"},
		Code: `# Classes
class Shape:
    """Base shape."""

    def area(self):
        """Return the area."""
        return 0


class Rectangle(Shape):
    """Axis-aligned rectangle."""

    def __init__(self, width, height):
        """Store the dimensions."""
        self.width = width
        self.height = height

    @property
    def is_square(self):
        """True when both sides match."""
        return self.width == self.height

    def area(self):
        """Width times height."""
        return self.width * self.height


shape = Rectangle(3, 4)
print(shape.area())
`,
	},
	{
		ID:          "file-operations",
		Title:       "File Operations",
		Description: "Reading and writing JSON through context managers",
		Language:    "python",
		Difficulty:  model.DifficultyIntermediate,
		Concepts:    []string{"file I/O", "context managers", "JSON"},
		Code: `# Files and JSON
import json


def save(path, data):
    """Write data as JSON."""
    with open(path, "w") as fh:
        json.dump(data, fh, indent=2)


def load(path):
    """Read JSON from path."""
    with open(path) as fh:
        return json.load(fh)


save("settings.json", {"theme": "dark"})
print(load("settings.json"))
`,
	},
	{
		ID:          "generators",
		Title:       "Generators",
		Description: "Lazy sequences with yield and generator expressions",
		Language:    "python",
		Difficulty:  model.DifficultyAdvanced,
		Concepts:    []string{"generators", "yield", "generator expressions", "iteration"},
		Code: `# Generators
def fibonacci(limit):
    """Yield Fibonacci numbers below limit."""
    a, b = 0, 1
    while a < limit:
        yield a
        a, b = b, a + b


total = sum(n for n in fibonacci(100) if n % 2 == 0)
print(total)
print(list(fibonacci(20)))
`,
	},
	{
		ID:          "decorators",
		Title:       "Decorators",
		Description: "A timing decorator built with functools.wraps",
		Language:    "python",
		Difficulty:  model.DifficultyAdvanced,
		Concepts:    []string{"decorators", "functools", "closures"},
		Code: `# Decorators
import functools
import time


def timed(func):
    """Report how long func takes."""
    @functools.wraps(func)
    def wrapper(*args, **kwargs):
        start = time.perf_counter()
        result = func(*args, **kwargs)
        print(f"{func.__name__} took {time.perf_counter() - start:.3f}s")
        return result
    return wrapper


@timed
def slow_add(a, b):
    """Add after a pause."""
    time.sleep(0.1)
    return a + b


print(slow_add(2, 3))
`,
	},
	{
		ID:          "common-pitfalls",
		Title:       "Common Pitfalls",
		Description: "Code that trips the style, security and performance checks",
		Language:    "python",
		Difficulty:  model.DifficultyAdvanced,
		Concepts:    []string{"security", "performance", "best practices", "naming"},
		Code: `import os
import pickle
from math import *

def ProcessItems(items=[]):
    result = ""
    for i in range(len(items)):
        result += "," + items[i]
    if result == None:
        return None
    return result

userInput = input("Expression: ")
value = eval(userInput)
data = pickle.load(open("cache.bin", "rb"))
os.system("ls " + userInput)
try:
    print(value)
except:
    pass
`,
	},
}
